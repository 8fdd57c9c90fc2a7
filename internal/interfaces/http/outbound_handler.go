package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/apetrovv/warehouse-api/internal/application/dto"
	"github.com/apetrovv/warehouse-api/internal/application/stock"
)

// OutboundHandler maneja las peticiones HTTP para documentos de despacho
// (protegido).
type OutboundHandler struct {
	uc *stock.OutboundUseCase
}

// NewOutboundHandler construye el handler.
func NewOutboundHandler(uc *stock.OutboundUseCase) *OutboundHandler {
	return &OutboundHandler{uc: uc}
}

// Create godoc
// @Summary      Crear documento de despacho
// @Tags         outbound
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOutboundShipmentRequest  true  "Cabecera del documento"
// @Success      201   {object}  dto.OutboundShipmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/outbound-shipments [post]
func (h *OutboundHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOutboundShipmentRequest
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
// @Summary      Obtener documento de despacho
// @Tags         outbound
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.OutboundShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outbound-shipments/{id} [get]
func (h *OutboundHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar documentos de despacho
// @Tags         outbound
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.OutboundShipmentListResponse
// @Router       /api/outbound-shipments [get]
func (h *OutboundHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar posición al documento
// @Description  La primera posición pasa el documento de NEW a PENDING_ASSEMBLY.
// @Tags         outbound
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del documento"
// @Param        body  body  dto.AddOutboundItemRequest  true  "Posición"
// @Success      201   {object}  dto.OutboundShipmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/outbound-shipments/{id}/items [post]
func (h *OutboundHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddOutboundItemRequest
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
// @Tags         outbound
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                         true  "ID del documento"
// @Param        itemId  path  string                         true  "ID de la posición"
// @Param        body    body  dto.UpdateOutboundItemRequest  true  "Campos a actualizar"
// @Success      200     {object}  dto.OutboundShipmentResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/outbound-shipments/{id}/items/{itemId} [put]
func (h *OutboundHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateOutboundItemRequest
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
// @Tags         outbound
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del documento"
// @Param        itemId  path  string  true  "ID de la posición"
// @Success      200     {object}  dto.OutboundShipmentResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/outbound-shipments/{id}/items/{itemId} [delete]
func (h *OutboundHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Params("id"), c.Params("itemId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transición administrativa de estado
// @Description  Solo transiciones del ciclo de armado (ASSEMBLING, READY_FOR_SHIPMENT).
// @Tags         outbound
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del documento"
// @Param        body  body  dto.UpdateOutboundStatusRequest  true  "Estado destino"
// @Success      200   {object}  dto.OutboundShipmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/outbound-shipments/{id}/status [patch]
func (h *OutboundHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOutboundStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Params("id"), in.Status)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Process godoc
// @Summary      Procesar el despacho (transaccional)
// @Description  Retira el stock según la estrategia de asignación y marca SHIPPED. Todo o nada.
// @Tags         outbound
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.OutboundShipmentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/outbound-shipments/{id}/process [post]
func (h *OutboundHandler) Process(c *fiber.Ctx) error {
	out, err := h.uc.ProcessDispatch(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar documento de despacho
// @Tags         outbound
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.OutboundShipmentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/outbound-shipments/{id}/cancel [post]
func (h *OutboundHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// PackingList godoc
// @Summary      Descargar packing list del despacho (PDF)
// @Tags         outbound
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outbound-shipments/{id}/packing-list [get]
func (h *OutboundHandler) PackingList(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.PackingListPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="packing-list.pdf"`)
	return c.Send(pdfBytes)
}
