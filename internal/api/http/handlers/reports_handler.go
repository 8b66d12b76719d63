package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/dto"
	"github.com/spec-kit/pos-service/internal/repository"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// ReportsHandler serves financial reports.
type ReportsHandler struct {
	reports repository.ReportRepository
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports repository.ReportRepository) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Summary handles GET /api/reports/summary. Without startDate/endDate the
// summary covers all recorded history.
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.reports.ProfitSummary(c.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewProfitSummaryResponse(summary))
}
