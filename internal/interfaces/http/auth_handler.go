package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/apetrovv/warehouse-api/internal/application/auth"
	"github.com/apetrovv/warehouse-api/internal/application/dto"
)

// AuthHandler maneja las peticiones HTTP de autenticación (público).
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
