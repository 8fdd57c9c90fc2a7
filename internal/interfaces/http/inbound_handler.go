package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/apetrovv/warehouse-api/internal/application/dto"
	"github.com/apetrovv/warehouse-api/internal/application/stock"
)

// InboundHandler maneja las peticiones HTTP para documentos de recepción
// (protegido).
type InboundHandler struct {
	uc *stock.InboundUseCase
}

// NewInboundHandler construye el handler.
func NewInboundHandler(uc *stock.InboundUseCase) *InboundHandler {
	return &InboundHandler{uc: uc}
}

// Create godoc
// @Summary      Crear documento de recepción
// @Tags         inbound
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInboundShipmentRequest  true  "Cabecera del documento"
// @Success      201   {object}  dto.InboundShipmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inbound-shipments [post]
func (h *InboundHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInboundShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento de recepción
// @Tags         inbound
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.InboundShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inbound-shipments/{id} [get]
func (h *InboundHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar documentos de recepción
// @Tags         inbound
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.InboundShipmentListResponse
// @Router       /api/inbound-shipments [get]
func (h *InboundHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar posición al documento
// @Description  La primera posición pasa el documento de PLANNED a IN_PROGRESS.
// @Tags         inbound
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del documento"
// @Param        body  body  dto.AddInboundItemRequest  true  "Posición"
// @Success      201   {object}  dto.InboundShipmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inbound-shipments/{id}/items [post]
func (h *InboundHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddInboundItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddItem(c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Actualizar posición del documento
// @Tags         inbound
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                        true  "ID del documento"
// @Param        itemId  path  string                        true  "ID de la posición"
// @Param        body    body  dto.UpdateInboundItemRequest  true  "Campos a actualizar"
// @Success      200     {object}  dto.InboundShipmentResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/inbound-shipments/{id}/items/{itemId} [put]
func (h *InboundHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateInboundItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateItem(c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Eliminar posición del documento
// @Tags         inbound
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del documento"
// @Param        itemId  path  string  true  "ID de la posición"
// @Success      200     {object}  dto.InboundShipmentResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/inbound-shipments/{id}/items/{itemId} [delete]
func (h *InboundHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Params("id"), c.Params("itemId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Process godoc
// @Summary      Procesar la recepción (transaccional)
// @Description  Deposita lo recibido de cada posición en su celda y marca COMPLETED. Todo o nada.
// @Tags         inbound
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.InboundShipmentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inbound-shipments/{id}/process [post]
func (h *InboundHandler) Process(c *fiber.Ctx) error {
	out, err := h.uc.ProcessReceipt(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar documento de recepción
// @Tags         inbound
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.InboundShipmentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inbound-shipments/{id}/cancel [post]
func (h *InboundHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
