package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/apetrovv/warehouse-api/internal/application/dto"
	"github.com/apetrovv/warehouse-api/internal/application/stock"
	"github.com/apetrovv/warehouse-api/internal/application/usecase"
)

// StorageCellHandler maneja las peticiones HTTP para celdas y su contenido
// (protegido).
type StorageCellHandler struct {
	uc      *usecase.StorageCellUseCase
	stockUC *stock.CellContentUseCase
}

// NewStorageCellHandler construye el handler.
func NewStorageCellHandler(uc *usecase.StorageCellUseCase, stockUC *stock.CellContentUseCase) *StorageCellHandler {
	return &StorageCellHandler{uc: uc, stockUC: stockUC}
}

// Create godoc
// @Summary      Crear celda de almacenamiento
// @Tags         storage-cells
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStorageCellRequest  true  "Datos de la celda"
// @Success      201   {object}  dto.StorageCellResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storage-cells [post]
func (h *StorageCellHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStorageCellRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener celda por ID (incluye ocupación)
// @Tags         storage-cells
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la celda"
// @Success      200  {object}  dto.StorageCellResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage-cells/{id} [get]
func (h *StorageCellHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar celdas
// @Tags         storage-cells
// @Security     Bearer
// @Produce      json
// @Param        only_active  query  bool  false  "Solo celdas activas"
// @Param        limit        query  int   false  "Límite"  default(20)
// @Param        offset       query  int   false  "Offset"  default(0)
// @Success      200          {object}  dto.StorageCellListResponse
// @Router       /api/storage-cells [get]
func (h *StorageCellHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.QueryBool("only_active", false), limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar celda
// @Tags         storage-cells
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la celda"
// @Param        body  body  dto.UpdateStorageCellRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.StorageCellResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storage-cells/{id} [put]
func (h *StorageCellHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStorageCellRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar celda (solo vacía)
// @Tags         storage-cells
// @Security     Bearer
// @Param        id  path  string  true  "ID de la celda"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/storage-cells/{id} [delete]
func (h *StorageCellHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListContents godoc
// @Summary      Listar contenido de una celda
// @Tags         storage-cells
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la celda"
// @Success      200  {object}  dto.CellContentListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage-cells/{id}/contents [get]
func (h *StorageCellHandler) ListContents(c *fiber.Ctx) error {
	out, err := h.stockUC.ListCellContents(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Deposit godoc
// @Summary      Depositar producto en una celda
// @Description  Valida celda activa y capacidad antes de sumar; registra el movimiento.
// @Tags         storage-cells
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la celda"
// @Param        body  body  dto.DepositRequest  true  "Producto y cantidad"
// @Success      201   {object}  dto.CellContentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storage-cells/{id}/contents [post]
func (h *StorageCellHandler) Deposit(c *fiber.Ctx) error {
	var in dto.DepositRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.stockUC.Deposit(c.UserContext(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Withdraw godoc
// @Summary      Retirar cantidad de una fila de contenido
// @Description  Si la cantidad llega a cero la fila se elimina (removed=true).
// @Tags         storage-cells
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        contentId  path  string               true  "ID del contenido"
// @Param        body       body  dto.WithdrawRequest  true  "Cantidad a retirar"
// @Success      200        {object}  dto.CellContentResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/storage-cells/contents/{contentId}/withdraw [post]
func (h *StorageCellHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.WithdrawRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.stockUC.Withdraw(c.UserContext(), c.Params("contentId"), in, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AdjustQuantity godoc
// @Summary      Fijar la cantidad absoluta de una fila de contenido
// @Description  Registra un ajuste con la diferencia; 0 elimina la fila.
// @Tags         storage-cells
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        contentId  path  string                     true  "ID del contenido"
// @Param        body       body  dto.AdjustQuantityRequest  true  "Cantidad resultante"
// @Success      200        {object}  dto.CellContentResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/storage-cells/contents/{contentId}/quantity [patch]
func (h *StorageCellHandler) AdjustQuantity(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.stockUC.AdjustQuantity(c.UserContext(), c.Params("contentId"), in.Quantity, GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos de una celda
// @Tags         storage-cells
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la celda"
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.StockMovementListResponse
// @Router       /api/storage-cells/{id}/movements [get]
func (h *StorageCellHandler) Movements(c *fiber.Ctx) error {
	from, to, err := dateRangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	limit, offset := pageParams(c)
	out, err := h.stockUC.MovementsByCell(c.Params("id"), from, to, limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// dateRangeParams lee from/to como RFC3339 opcionales.
func dateRangeParams(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}
