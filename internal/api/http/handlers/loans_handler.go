package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/dto"
	"github.com/spec-kit/pos-service/internal/domain"
	"github.com/spec-kit/pos-service/internal/repository"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// LoansHandler manages stock loaned out against collateral.
type LoansHandler struct {
	loans repository.LoanRepository
}

// NewLoansHandler constructs handler.
func NewLoansHandler(loans repository.LoanRepository) *LoansHandler {
	return &LoansHandler{loans: loans}
}

// List handles GET /api/loans.
func (h *LoansHandler) List(c *fiber.Ctx) error {
	loans, err := h.loans.List(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(loans)
}

// Create handles POST /api/loans. Loaned quantities come out of stock in the
// same transaction that records the loan.
func (h *LoansHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.BorrowerName == "" {
		return apperrors.NewValidationError("borrower name required")
	}
	if len(req.Items) == 0 {
		return apperrors.NewValidationError("loan needs at least one item")
	}

	loan := &domain.Loan{
		BorrowerName:          req.BorrowerName,
		BorrowerContact:       req.BorrowerContact,
		Collateral:            req.Collateral,
		CollateralDescription: req.CollateralDescription,
		Status:                domain.LoanActive,
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return apperrors.NewValidationError("item quantity must be positive")
		}
		loan.Items = append(loan.Items, domain.LoanItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := h.loans.Create(c.Context(), loan); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": loan.ID})
}

// Update handles PUT /api/loans/:id for borrower and collateral details.
func (h *LoansHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid loan id")
	}

	var req dto.UpdateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	loan := &domain.Loan{
		ID:                    int64(id),
		BorrowerName:          req.BorrowerName,
		BorrowerContact:       req.BorrowerContact,
		Collateral:            req.Collateral,
		CollateralDescription: req.CollateralDescription,
	}
	if err := h.loans.Update(c.Context(), loan); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Return handles POST /api/loans/:id/return. Restores the loaned quantities
// to stock and closes the loan.
func (h *LoansHandler) Return(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid loan id")
	}
	if err := h.loans.MarkReturned(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}
