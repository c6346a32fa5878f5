package port

import "context"

// RawItem is one untyped line item as returned by the model. Fields are kept
// as raw JSON-ish values because the model routinely omits or mistypes them;
// the sanitizer owns coercion.
type RawItem struct {
	ItemName     string      `json:"item_name"`
	ItemRate     interface{} `json:"item_rate"`
	ItemQuantity interface{} `json:"item_quantity"`
	ItemAmount   interface{} `json:"item_amount"`
}

// RawExtraction is the untrusted per-page output of the vision model.
type RawExtraction struct {
	PageType  string    `json:"page_type"`
	BillItems []RawItem `json:"bill_items"`
}

// Usage is the token accounting for a single model call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ExtractInput carries one encoded page image to a PageExtractor.
type ExtractInput struct {
	// ImageJPEG is the page re-encoded as JPEG for transport.
	ImageJPEG []byte
	// PageNo is the 1-based page number, used for error attribution only;
	// it is never sent to the model.
	PageNo int
}

// PageExtractor abstracts one vision-model call per bill page. Usage is nil
// when the provider did not report token accounting.
type PageExtractor interface {
	ExtractPage(ctx context.Context, input ExtractInput) (*RawExtraction, *Usage, error)
}
