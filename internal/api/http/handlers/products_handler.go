package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/dto"
	"github.com/spec-kit/pos-service/internal/domain"
	"github.com/spec-kit/pos-service/internal/repository"
	"github.com/spec-kit/pos-service/internal/storage"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// ProductsHandler exposes catalog CRUD and image attachment.
type ProductsHandler struct {
	products repository.ProductRepository
	images   *storage.ImageStore
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products repository.ProductRepository, images *storage.ImageStore) *ProductsHandler {
	return &ProductsHandler{products: products, images: images}
}

// List handles GET /api/products. With a page query parameter the result is
// wrapped in a data/meta envelope, otherwise the full set is returned flat.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	page := repository.NewPage(c.QueryInt("page"), c.QueryInt("limit"))

	products, total, err := h.products.List(c.Context(), page)
	if err != nil {
		return apperrors.MapError(err)
	}

	responses := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, dto.NewProductResponse(&products[i]))
	}

	if page.Enabled() {
		return c.JSON(fiber.Map{
			"data": responses,
			"meta": dto.NewPageMeta(total, page.Number, page.Limit),
		})
	}
	return c.JSON(responses)
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required")
	}

	product := &domain.Product{
		Name:     req.Name,
		Barcode:  req.Barcode,
		Price:    req.Price,
		Cost:     req.Cost,
		Stock:    req.Stock,
		Category: req.Category,
	}
	if err := h.products.Create(c.Context(), product); err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": product.ID})
}

// CreateBulk handles POST /api/products/bulk.
func (h *ProductsHandler) CreateBulk(c *fiber.Ctx) error {
	var req dto.BulkProductsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if len(req.Products) == 0 {
		return apperrors.NewValidationError("products required")
	}

	products := make([]domain.Product, 0, len(req.Products))
	for _, p := range req.Products {
		if p.Name == "" {
			return apperrors.NewValidationError("every product needs a name")
		}
		products = append(products, domain.Product{
			Name:     p.Name,
			Barcode:  p.Barcode,
			Price:    p.Price,
			Cost:     p.Cost,
			Stock:    p.Stock,
			Category: p.Category,
		})
	}

	created, err := h.products.CreateBulk(c.Context(), products)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "created": created})
}

// Update handles PUT /api/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid product id")
	}

	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	product := &domain.Product{
		ID:       int64(id),
		Name:     req.Name,
		Barcode:  req.Barcode,
		Price:    req.Price,
		Cost:     req.Cost,
		Stock:    req.Stock,
		Category: req.Category,
	}
	if err := h.products.Update(c.Context(), product); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete handles DELETE /api/products/:id. Rows are soft-deleted so sale
// history keeps its product references.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid product id")
	}
	if err := h.products.SoftDelete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// UploadImage handles POST /api/products/image (multipart form).
func (h *ProductsHandler) UploadImage(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.FormValue("productId"), 10, 64)
	if err != nil || productID <= 0 {
		return apperrors.NewValidationError("Missing image or productId")
	}

	header, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewValidationError("Missing image or productId")
	}
	contentType := header.Header.Get("Content-Type")
	if !storage.AllowedContentType(contentType) {
		return apperrors.NewValidationError("Invalid file type. Allowed: JPG, PNG, WebP")
	}
	if header.Size > storage.MaxImageBytes {
		return apperrors.NewValidationError("File too large. Maximum size is 2MB")
	}

	file, err := header.Open()
	if err != nil {
		return apperrors.MapError(err)
	}
	defer file.Close()

	filename := storage.Filename(productID, contentType)
	if err := h.images.Save(filename, file); err != nil {
		return apperrors.MapError(err)
	}

	imageURL := "/api/images/" + filename
	if err := h.products.SetImage(c.Context(), productID, &imageURL); err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"imageUrl": imageURL,
		"filename": filename,
	})
}

// DeleteImage handles DELETE /api/products/image.
func (h *ProductsHandler) DeleteImage(c *fiber.Ctx) error {
	var req struct {
		ProductID int64  `json:"productId"`
		Filename  string `json:"filename"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.ProductID <= 0 {
		return apperrors.NewValidationError("Missing productId")
	}

	if req.Filename != "" && storage.ValidFilename(req.Filename) {
		// Stale files are tolerable; the database row is authoritative.
		_ = h.images.Delete(req.Filename)
	}

	if err := h.products.SetImage(c.Context(), req.ProductID, nil); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}
