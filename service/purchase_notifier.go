package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"gamevault/models"
)

const noMessage = "No additional message"

// PurchaseNotifierInterface defines the contract for relaying purchase requests
type PurchaseNotifierInterface interface {
	Submit(ctx context.Context, item *models.Item, handle, message string) error
}

// PurchaseNotifier posts purchase requests to a chat webhook
// Implements PurchaseNotifierInterface
type PurchaseNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewPurchaseNotifier creates a new PurchaseNotifier. An empty webhookURL
// makes every Submit fail with ErrNotifierNotConfigured.
func NewPurchaseNotifier(webhookURL string, httpClient *http.Client) *PurchaseNotifier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PurchaseNotifier{
		webhookURL: strings.TrimSpace(webhookURL),
		httpClient: httpClient,
	}
}

// Ensure PurchaseNotifier implements PurchaseNotifierInterface
var _ PurchaseNotifierInterface = (*PurchaseNotifier)(nil)

// FormatPurchaseMessage renders the fixed purchase request template.
// The price prints as a plain number: $1250, $9.5.
func FormatPurchaseMessage(item models.Item, handle, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		message = noMessage
	}
	return fmt.Sprintf("🛒 **New Purchase Request**\n\n**Item:** %s\n**Price:** $%s\n**Discord Username:** %s\n**Message:** %s\n\n*Please contact the user to complete the transaction.*",
		item.Title, strconv.FormatFloat(item.Price, 'f', -1, 64), strings.TrimSpace(handle), message)
}

// Submit validates the request and delivers it with a single POST.
// Any 2xx answer is success; there is no retry.
func (n *PurchaseNotifier) Submit(ctx context.Context, item *models.Item, handle, message string) error {
	if item == nil {
		return fmt.Errorf("%w: item is required", models.ErrInvalidPurchase)
	}
	if strings.TrimSpace(handle) == "" {
		return fmt.Errorf("%w: discord username is required", models.ErrInvalidPurchase)
	}
	if n.webhookURL == "" {
		return models.ErrNotifierNotConfigured
	}

	payload, err := json.Marshal(models.WebhookMessage{Content: FormatPurchaseMessage(*item, handle, message)})
	if err != nil {
		return fmt.Errorf("failed to encode webhook message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to build request: %w", models.ErrNotificationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("📤 PurchaseNotifier: Sending purchase request for item=%s", item.ID)
	resp, err := n.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ PurchaseNotifier: Webhook unreachable: %v", err)
		return fmt.Errorf("%w: %w", models.ErrNotificationFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("❌ PurchaseNotifier: Webhook returned status %d", resp.StatusCode)
		return fmt.Errorf("%w: webhook returned status %d", models.ErrNotificationFailed, resp.StatusCode)
	}

	log.Printf("✅ PurchaseNotifier: Purchase request delivered for item=%s", item.ID)
	return nil
}
