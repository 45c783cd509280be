package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	backofficeapp "github.com/nordiclux/storefront/internal/backoffice/app"
	catalogapp "github.com/nordiclux/storefront/internal/catalog/app"
	checkoutapp "github.com/nordiclux/storefront/internal/checkout/app"
	orderapp "github.com/nordiclux/storefront/internal/order/app"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondErr translates service errors into HTTP responses.
func respondErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catalogapp.ErrDuplicateSKU):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: "duplicate_sku", Message: err.Error()})
	case errors.Is(err, checkoutapp.ErrNotAtReview):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: "wrong_step", Message: err.Error()})
	case errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, orderapp.ErrNotFound),
		errors.Is(err, backofficeapp.ErrNotFound),
		errors.Is(err, checkoutapp.ErrNoOrder):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, backofficeapp.ErrBadCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "unauthorized", Message: err.Error()})
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput),
		errors.Is(err, backofficeapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrMissingFields),
		errors.Is(err, checkoutapp.ErrInvalidCard),
		errors.Is(err, checkoutapp.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "validation_error", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal_error", Message: err.Error()})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_request", Message: message})
}
