package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamevault/config"
	"gamevault/models"
)

// newFakeAuthServer answers the GoTrue endpoints used by the admin login
func newFakeAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"msg":"User already registered"}`))
	})
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"token-1","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	auth := newFakeAuthServer(t)
	cfg := &config.Config{
		SupabaseURL:     auth.URL,
		SupabaseAnonKey: "anon",
		ItemStoreDriver: config.DriverMemory,
		AdminUsername:   "admin",
		AdminEmail:      "admin@gamevault.local",
		AdminPassword:   "admin123",
		Port:            "8080",
		BaseURL:         "http://localhost:8080",
		HTTPTimeout:     5 * time.Second,
		ImageCacheDir:   t.TempDir(),
	}

	application, err := Initialize(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { application.Close() })

	server := httptest.NewServer(application.Handler)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return server, &http.Client{Jar: jar}
}

func do(t *testing.T, client *http.Client, method, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRoutes_Public(t *testing.T) {
	server, client := newTestServer(t)

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/ping", http.StatusOK},
		{http.MethodGet, "/items", http.StatusOK},
		{http.MethodGet, "/items/1", http.StatusOK},
		{http.MethodGet, "/items/zzz", http.StatusNotFound},
		{http.MethodGet, "/items/1/reviews/2", http.StatusNotFound},
		{http.MethodPost, "/items/refresh", http.StatusOK},
		{http.MethodGet, "/items/refresh", http.StatusMethodNotAllowed},
		{http.MethodGet, "/catalog?format=html", http.StatusOK},
		{http.MethodGet, "/admin/session", http.StatusOK},
		{http.MethodGet, "/admin/items", http.StatusUnauthorized},
		{http.MethodPost, "/admin/items", http.StatusUnauthorized},
		{http.MethodDelete, "/admin/items/1", http.StatusUnauthorized},
		{http.MethodGet, "/admin/drive/images?folderId=f", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		resp := do(t, client, tc.method, server.URL+tc.path, nil)
		assert.Equal(t, tc.want, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestRoutes_AdminItemLifecycle(t *testing.T) {
	server, client := newTestServer(t)

	resp := do(t, client, http.MethodPost, server.URL+"/admin/login", models.LoginRequest{Username: "admin", Password: "admin123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	fields := models.ItemFields{Title: "Fortnite V-Bucks", Price: 19.99, Category: models.CategoryGiftCards, InStock: true}
	resp = do(t, client, http.MethodPost, server.URL+"/admin/items", fields)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	resp = do(t, client, http.MethodGet, server.URL+"/items?search=v-bucks", nil)
	var page models.ItemPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)

	fields.InStock = false
	resp = do(t, client, http.MethodPut, server.URL+"/admin/items/"+created.ID, fields)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, client, http.MethodPatch, server.URL+"/admin/items/"+created.ID, fields)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp = do(t, client, http.MethodDelete, server.URL+"/admin/items/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, client, http.MethodGet, server.URL+"/admin/items", nil)
	var dashboard models.AdminDashboard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dashboard))
	assert.Equal(t, 6, dashboard.Stats.TotalItems)

	resp = do(t, client, http.MethodPost, server.URL+"/admin/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, client, http.MethodGet, server.URL+"/admin/items", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
