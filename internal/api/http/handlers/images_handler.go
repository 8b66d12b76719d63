package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/storage"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// ImagesHandler serves stored product images. The route is public so the
// sales screen can render thumbnails without a token.
type ImagesHandler struct {
	images *storage.ImageStore
}

// NewImagesHandler constructs handler.
func NewImagesHandler(images *storage.ImageStore) *ImagesHandler {
	return &ImagesHandler{images: images}
}

// Serve handles GET /api/images/:filename.
func (h *ImagesHandler) Serve(c *fiber.Ctx) error {
	filename := c.Params("filename")
	if !storage.ValidFilename(filename) {
		return apperrors.NewValidationError("Invalid filename")
	}

	file, err := h.images.Open(filename)
	if err != nil {
		return apperrors.NewNotFound("image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperrors.MapError(err)
	}

	c.Set(fiber.HeaderContentType, storage.ContentTypeFor(filename))
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.Send(data)
}
