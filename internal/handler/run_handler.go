package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billex/internal/service"
	"billex/internal/xlsxexport"
)

// RunHandler serves the extraction run history.
type RunHandler struct {
	extractionService service.ExtractionService
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(extractionService service.ExtractionService) *RunHandler {
	return &RunHandler{extractionService: extractionService}
}

// List handles GET /api/v1/runs
// @Summary List extraction runs
// @Description List recorded extraction runs, newest first
// @Tags runs
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} APIResponse{data=[]domain.ExtractionRun}
// @Failure 501 {object} APIResponse "History not configured"
// @Router /runs [get]
func (h *RunHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	runs, total, err := h.extractionService.ListRuns(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, runs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/runs/:id
// @Summary Get extraction run
// @Description Get one recorded extraction run including its stored result payload
// @Tags runs
// @Produce json
// @Param id path string true "Run ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.ExtractionRun}
// @Failure 404 {object} APIResponse "Run not found"
// @Router /runs/{id} [get]
func (h *RunHandler) GetByID(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid run ID")
		return
	}

	run, err := h.extractionService.GetRun(c.Request.Context(), runID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, run)
}

// Export handles GET /api/v1/runs/:id/export
// @Summary Export extraction run as XLSX
// @Description Download the run's extracted line items as a spreadsheet
// @Tags runs
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Run ID (UUID)"
// @Success 200 {file} binary
// @Failure 404 {object} APIResponse "Run not found"
// @Router /runs/{id}/export [get]
func (h *RunHandler) Export(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid run ID")
		return
	}

	run, err := h.extractionService.GetRun(c.Request.Context(), runID)
	if err != nil {
		HandleError(c, err)
		return
	}

	workbook, err := xlsxexport.RunToXLSX(run)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "failed to build spreadsheet")
		return
	}

	filename := fmt.Sprintf("extraction-%s.xlsx", runID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
