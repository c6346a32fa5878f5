package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billex/internal/domain"
	"billex/internal/service"
)

// ExtractHandler handles the bill extraction endpoint.
type ExtractHandler struct {
	extractionService service.ExtractionService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractionService service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{extractionService: extractionService}
}

// ExtractRequest is the inbound request body.
type ExtractRequest struct {
	Document string `json:"document" binding:"required"`
}

// Extract handles POST /extract-bill-data
// @Summary Extract bill line items
// @Description Download a medical bill document (PDF or image), extract structured line items per page with a vision model, and return the cleaned, deduplicated payload with token usage
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body ExtractRequest true "Document reference (http(s) URL or s3://bucket/key)"
// @Success 200 {object} domain.ExtractionResponse "Extraction envelope; is_success is the sole failure signal"
// @Router /extract-bill-data [post]
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Even malformed requests get the fixed envelope so callers can
		// always key off is_success.
		c.JSON(http.StatusOK, domain.ExtractionResponse{
			IsSuccess: false,
			Data:      &domain.ExtractionData{PagewiseLineItems: []domain.PageLineItems{}},
			Error:     "document is required",
		})
		return
	}

	resp := h.extractionService.ExtractBill(c.Request.Context(), req.Document)
	c.JSON(http.StatusOK, resp)
}
