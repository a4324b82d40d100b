package models

// PurchaseRequest represents the request body for POST /items/{id}/purchase
type PurchaseRequest struct {
	DiscordUsername string `json:"discordUsername"`
	Message         string `json:"message"`
}

// PurchaseResponse represents the response after relaying a purchase request
type PurchaseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// WebhookMessage is the JSON body posted to the chat webhook
type WebhookMessage struct {
	Content string `json:"content"`
}
