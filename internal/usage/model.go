package usage

import "time"

// Outcome of a completion call.
const (
	StatusOK     = "ok"
	StatusError  = "error"
	StatusCached = "cached"
)

// Record is one completion call. It carries metadata only: the answers and
// the model's text are never stored.
type Record struct {
	ID               string    `json:"id"`
	Provider         string    `json:"provider"`
	Model            string    `json:"model"`
	PromptHash       string    `json:"promptHash"`
	PromptTokens     int       `json:"promptTokens"`
	CompletionTokens int       `json:"completionTokens"`
	TotalTokens      int       `json:"totalTokens"`
	Status           string    `json:"status"`
	DurationMs       int64     `json:"durationMs"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Summary aggregates the ledger.
type Summary struct {
	Requests    int            `json:"requests"`
	ByStatus    map[string]int `json:"byStatus"`
	TotalTokens int            `json:"totalTokens"`
	LastCallAt  *time.Time     `json:"lastCallAt,omitempty"`
}
