package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billex/internal/domain"
	"billex/internal/handler"
	"billex/mocks"
)

func extractRouter(svc *mocks.MockExtractionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewExtractHandler(svc)
	r.POST("/extract-bill-data", h.Extract)
	return r
}

func TestExtract_Success(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	svc.On("ExtractBill", mock.Anything, "https://example.com/bill.pdf").Return(&domain.ExtractionResponse{
		IsSuccess:  true,
		TokenUsage: domain.TokenUsage{TotalTokens: 150, InputTokens: 120, OutputTokens: 30},
		Data: &domain.ExtractionData{
			PagewiseLineItems: []domain.PageLineItems{
				{
					PageNo:   "1",
					PageType: domain.PageTypeFinalBill,
					BillItems: []domain.BillItem{
						{ItemName: "Consultation", ItemRate: 500, ItemQuantity: 1, ItemAmount: 500},
					},
				},
			},
			TotalItemCount: 1,
		},
	})

	r := extractRouter(svc)
	body := bytes.NewBufferString(`{"document": "https://example.com/bill.pdf"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/extract-bill-data", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["is_success"])

	usage := resp["token_usage"].(map[string]interface{})
	assert.Equal(t, float64(150), usage["total_tokens"])
	assert.Equal(t, float64(120), usage["input_tokens"])
	assert.Equal(t, float64(30), usage["output_tokens"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total_item_count"])
	pages := data["pagewise_line_items"].([]interface{})
	require.Len(t, pages, 1)
	page := pages[0].(map[string]interface{})
	assert.Equal(t, "1", page["page_no"])
	assert.Equal(t, "Final Bill", page["page_type"])

	svc.AssertExpectations(t)
}

func TestExtract_MissingDocumentStillReturns200(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	r := extractRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/extract-bill-data", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["is_success"])
	assert.Equal(t, "document is required", resp["error"])

	svc.AssertNotCalled(t, "ExtractBill", mock.Anything, mock.Anything)
}

func TestExtract_ServiceFailureKeepsEnvelope(t *testing.T) {
	svc := new(mocks.MockExtractionService)
	svc.On("ExtractBill", mock.Anything, mock.Anything).Return(&domain.ExtractionResponse{
		IsSuccess: false,
		Data:      &domain.ExtractionData{PagewiseLineItems: []domain.PageLineItems{}},
		Error:     "failed to download document: unexpected status 404",
	})

	r := extractRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/extract-bill-data", bytes.NewBufferString(`{"document": "https://example.com/missing.pdf"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	// Pipeline failures never change the HTTP status.
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["is_success"])
	assert.Contains(t, resp["error"], "failed to download")

	data := resp["data"].(map[string]interface{})
	assert.Empty(t, data["pagewise_line_items"])
}
