package models

// StatusOK and StatusError are the values NewsAPI uses in the status field
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ArticlesResponse is the envelope returned by the NewsAPI /v2/everything endpoint
type ArticlesResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`

	// Only set when Status is "error"
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
