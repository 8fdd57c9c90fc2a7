package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/apetrovv/warehouse-api/internal/application/dto"
	"github.com/apetrovv/warehouse-api/internal/domain"
)

// errorStatus mapea errores de dominio a códigos HTTP y códigos estables de la
// API. Los errores vienen envueltos (fmt.Errorf %w) así que se compara con
// errors.Is. El orden importa: los más específicos primero.
var errorStatus = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrCapacityExceeded, fiber.StatusConflict, "CAPACITY_EXCEEDED"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrInactiveCell, fiber.StatusConflict, "INACTIVE_CELL"},
	{domain.ErrCellNotEmpty, fiber.StatusConflict, "CELL_NOT_EMPTY"},
	{domain.ErrInvalidState, fiber.StatusConflict, "INVALID_STATE"},
	{domain.ErrEmptyDocument, fiber.StatusUnprocessableEntity, "EMPTY_DOCUMENT"},
	{domain.ErrMissingLocation, fiber.StatusUnprocessableEntity, "MISSING_LOCATION"},
	{domain.ErrPartialShipment, fiber.StatusConflict, "PARTIAL_SHIPMENT"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// handleError responde el error de un caso de uso con el status y código
// correspondientes. Errores no mapeados son 500 INTERNAL.
func handleError(c *fiber.Ctx, err error) error {
	for _, m := range errorStatus {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
