package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"gamevault/filter"
	"gamevault/models"
	"gamevault/repository"
	"gamevault/service"
)

// SessionCookieName is the cookie carrying the admin session id
const SessionCookieName = "gamevault_session"

// AdminController handles the admin login and item management endpoints
type AdminController struct {
	sessions     service.SessionServiceInterface
	store        service.ItemStoreInterface
	driveService service.DriveServiceInterface // nil when Drive is not configured
	secureCookie bool
}

// NewAdminController creates a new AdminController. driveService may be nil.
func NewAdminController(sessions service.SessionServiceInterface, store service.ItemStoreInterface, driveService service.DriveServiceInterface, secureCookie bool) *AdminController {
	return &AdminController{
		sessions:     sessions,
		store:        store,
		driveService: driveService,
		secureCookie: secureCookie,
	}
}

func (c *AdminController) session(r *http.Request) (*service.Session, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	return c.sessions.Lookup(cookie.Value)
}

func (c *AdminController) setSessionCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireAdmin rejects requests without an authenticated admin session.
// The session access token is passed on in the request context for the item store.
func (c *AdminController) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := c.session(r)
		if !ok {
			log.Printf("❌ RequireAdmin: Unauthenticated %s request to %s", r.Method, r.URL.Path)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := repository.WithAccessToken(r.Context(), session.AccessToken())
		next(w, r.WithContext(ctx))
	}
}

// Login handles POST /admin/login
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Login: Received %s request", r.Method)

	if r.Method != http.MethodPost {
		log.Printf("❌ Login: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Login: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	sessionID, ok := c.sessions.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if !ok {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	c.setSessionCookie(w, sessionID, 0)
	log.Printf("✅ Login: Admin session started")
	writeJSON(w, http.StatusOK, models.SessionStatus{Authenticated: true}, "Login")
}

// Logout handles POST /admin/logout
func (c *AdminController) Logout(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Logout: Received %s request", r.Method)

	if r.Method != http.MethodPost {
		log.Printf("❌ Logout: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		c.sessions.Logout(r.Context(), cookie.Value)
	}

	c.setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, models.SessionStatus{Authenticated: false}, "Logout")
}

// Session handles GET /admin/session
func (c *AdminController) Session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ Session: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, ok := c.session(r)
	writeJSON(w, http.StatusOK, models.SessionStatus{Authenticated: ok}, "Session")
}

// Dashboard handles GET /admin/items
// Returns every item with the dashboard stats
func (c *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Dashboard: Received %s request", r.Method)

	if r.Method != http.MethodGet {
		log.Printf("❌ Dashboard: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result := c.store.Current(r.Context())
	writeJSON(w, http.StatusOK, models.AdminDashboard{
		Items:    result.Items,
		Stats:    filter.Summarize(result.Items),
		Advisory: result.Advisory,
	}, "Dashboard")
}

// CreateItem handles POST /admin/items
func (c *AdminController) CreateItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateItem: Received %s request", r.Method)

	if r.Method != http.MethodPost {
		log.Printf("❌ CreateItem: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var fields models.ItemFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Printf("❌ CreateItem: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	log.Printf("📋 CreateItem: title=%q, category=%s, price=%g", fields.Title, fields.Category, fields.Price)

	item, err := c.store.Create(r.Context(), fields)
	if err != nil {
		writeStoreError(w, "CreateItem", err)
		return
	}

	log.Printf("✅ CreateItem: Created item id=%s", item.ID)
	writeJSON(w, http.StatusCreated, item, "CreateItem")
}

// ReplaceItem handles PUT /admin/items/{id}
// Every field of the item is replaced by the request body
func (c *AdminController) ReplaceItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ReplaceItem: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPut {
		log.Printf("❌ ReplaceItem: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := pathID(r.URL.Path, "/admin/items/")
	if id == "" {
		log.Printf("❌ ReplaceItem: Missing item id")
		http.Error(w, "Item id is required", http.StatusBadRequest)
		return
	}

	var fields models.ItemFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Printf("❌ ReplaceItem: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	item, err := c.store.Replace(r.Context(), id, fields)
	if err != nil {
		writeStoreError(w, "ReplaceItem", err)
		return
	}

	log.Printf("✅ ReplaceItem: Replaced item id=%s", item.ID)
	writeJSON(w, http.StatusOK, item, "ReplaceItem")
}

// DeleteItem handles DELETE /admin/items/{id}
func (c *AdminController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteItem: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodDelete {
		log.Printf("❌ DeleteItem: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := pathID(r.URL.Path, "/admin/items/")
	if id == "" {
		log.Printf("❌ DeleteItem: Missing item id")
		http.Error(w, "Item id is required", http.StatusBadRequest)
		return
	}

	if err := c.store.Remove(r.Context(), id); err != nil {
		writeStoreError(w, "DeleteItem", err)
		return
	}

	log.Printf("✅ DeleteItem: Deleted item id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

// ListDriveImages handles GET /admin/drive/images?folderId=
// Lists the images of a Drive folder to pick item images from
func (c *AdminController) ListDriveImages(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListDriveImages: Received %s request", r.Method)

	if r.Method != http.MethodGet {
		log.Printf("❌ ListDriveImages: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if c.driveService == nil {
		log.Printf("❌ ListDriveImages: %v", models.ErrDriveNotConfigured)
		http.Error(w, "Google Drive is not configured", http.StatusServiceUnavailable)
		return
	}

	folderID := strings.TrimSpace(r.URL.Query().Get("folderId"))
	if folderID == "" {
		log.Printf("❌ ListDriveImages: folderId parameter is required")
		http.Error(w, "folderId parameter is required", http.StatusBadRequest)
		return
	}

	images, err := c.driveService.ListImages(r.Context(), folderID)
	if err != nil {
		log.Printf("❌ ListDriveImages: Error listing folder %s: %v", folderID, err)
		http.Error(w, fmt.Sprintf("Failed to list images: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, images, "ListDriveImages")
}
