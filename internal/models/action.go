package models

// Solana Actions protocol payloads.

const (
	ActionTypeAction      = "action"
	ActionTypeTransaction = "transaction"
)

// ActionGetResponse is the discovery payload returned for GET requests
type ActionGetResponse struct {
	Type              string    `json:"type"`
	ID                string    `json:"id"`
	Icon              string    `json:"icon"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Label             string    `json:"label"`
	PredefinedAmounts []float64 `json:"predefinedAmounts"`
	Recipient         string    `json:"recipient"`
	Links             Links     `json:"links"`
	Disabled          bool      `json:"disabled,omitempty"`
}

// ActionPostRequest is the body a wallet sends to execute an action
type ActionPostRequest struct {
	Account string   `json:"account"`
	Amount  *float64 `json:"amount,omitempty"`
}

// ActionPostResponse carries the unsigned, base64 encoded transaction
type ActionPostResponse struct {
	Type        string `json:"type"`
	Transaction string `json:"transaction"`
	Message     string `json:"message,omitempty"`
}

// ActionRule maps a public path pattern onto the API path serving it
type ActionRule struct {
	PathPattern string `json:"pathPattern"`
	APIPath     string `json:"apiPath"`
}

// ActionsJSON is served at /actions.json
type ActionsJSON struct {
	Rules []ActionRule `json:"rules"`
}
