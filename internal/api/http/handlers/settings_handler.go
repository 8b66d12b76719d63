package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/dto"
	"github.com/spec-kit/pos-service/internal/domain"
	"github.com/spec-kit/pos-service/internal/repository"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// SettingsHandler reads and writes the singleton business settings row.
type SettingsHandler struct {
	settings repository.SettingsRepository
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settings repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(settings)
}

// Update handles PUT /api/settings. Saving settings also marks initial
// setup as complete.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req dto.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.BusinessName == "" {
		return apperrors.NewValidationError("business name required")
	}

	settings := &domain.Settings{
		BusinessName:   req.BusinessName,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		CurrencySymbol: req.CurrencySymbol,
		CurrencyCode:   req.CurrencyCode,
		TaxRate:        req.TaxRate,
		LogoURL:        req.LogoURL,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		Timezone:       req.Timezone,
	}
	if err := h.settings.Upsert(c.Context(), settings); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}
