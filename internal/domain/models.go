package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BillItem is one validated line item extracted from a bill page.
type BillItem struct {
	ItemName     string  `json:"item_name"`
	ItemAmount   float64 `json:"item_amount"`
	ItemRate     float64 `json:"item_rate"`
	ItemQuantity float64 `json:"item_quantity"`
}

// PageLineItems holds the cleaned line items for a single page.
type PageLineItems struct {
	PageNo    string     `json:"page_no"`
	PageType  PageType   `json:"page_type"`
	BillItems []BillItem `json:"bill_items"`
}

// TokenUsage aggregates model token consumption across all pages of a request.
type TokenUsage struct {
	TotalTokens  int `json:"total_tokens"`
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Add accumulates another usage record into u.
func (u *TokenUsage) Add(other TokenUsage) {
	u.TotalTokens += other.TotalTokens
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// ExtractionData is the payload of a successful extraction.
type ExtractionData struct {
	PagewiseLineItems []PageLineItems `json:"pagewise_line_items"`
	TotalItemCount    int             `json:"total_item_count"`
}

// ExtractionResponse is the wire envelope for the extract endpoint. Callers
// must treat IsSuccess as the sole failure signal.
type ExtractionResponse struct {
	IsSuccess  bool            `json:"is_success"`
	TokenUsage TokenUsage      `json:"token_usage"`
	Data       *ExtractionData `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// ExtractionRun is a persisted record of one extraction request.
type ExtractionRun struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	DocumentRef string          `db:"document_ref" json:"document_ref"`
	IsSuccess   bool            `db:"is_success" json:"is_success"`
	PageCount   int             `db:"page_count" json:"page_count"`
	ItemCount   int             `db:"item_count" json:"item_count"`
	TotalTokens int             `db:"total_tokens" json:"total_tokens"`
	InputTokens int             `db:"input_tokens" json:"input_tokens"`
	OutputTokens int            `db:"output_tokens" json:"output_tokens"`
	Error       string          `db:"error" json:"error,omitempty"`
	DurationMS  int64           `db:"duration_ms" json:"duration_ms"`
	Result      json.RawMessage `db:"result" json:"result,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
