package middleware

import (
	"mime/multipart"

	"word-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidatedUploadKey is the fiber.Ctx locals key holding the checked *multipart.FileHeader.
const ValidatedUploadKey = "validated_upload"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateDocxUpload requires a .docx file in the multipart form field and stores its
// header in the context for the handler.
func (vm *ValidationMiddleware) ValidateDocxUpload(field string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var fileName string
		fh, err := c.FormFile(field)
		if err == nil && fh != nil {
			fileName = fh.Filename
		}

		if err := vm.validator.ValidateDocxUpload(fileName); err != nil {
			return err // This will be handled by ErrorHandler middleware
		}

		c.Locals(ValidatedUploadKey, fh)
		return c.Next()
	}
}

// ValidatedUpload returns the file header stored by ValidateDocxUpload.
func ValidatedUpload(c *fiber.Ctx) (*multipart.FileHeader, bool) {
	fh, ok := c.Locals(ValidatedUploadKey).(*multipart.FileHeader)
	return fh, ok && fh != nil
}
