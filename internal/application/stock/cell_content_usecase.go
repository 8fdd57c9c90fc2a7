package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apetrovv/warehouse-api/internal/application/dto"
	"github.com/apetrovv/warehouse-api/internal/domain"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

// CellContentUseCase es el gestor de contenido de celdas: única vía de
// mutación de (producto, celda) -> cantidad. Cada operación ejecuta en una
// transacción, valida capacidad/stock por agregación dentro de esa misma
// transacción y registra exactamente un movimiento de auditoría por cambio.
type CellContentUseCase struct {
	txRunner    TxRunner
	cellRepo    repository.StorageCellRepository
	contentRepo repository.CellContentRepository
	movRepo     repository.StockMovementRepository
}

// NewCellContentUseCase construye el caso de uso. cellRepo/contentRepo/movRepo
// se usan solo para lecturas fuera de transacción.
func NewCellContentUseCase(
	txRunner TxRunner,
	cellRepo repository.StorageCellRepository,
	contentRepo repository.CellContentRepository,
	movRepo repository.StockMovementRepository,
) *CellContentUseCase {
	return &CellContentUseCase{
		txRunner:    txRunner,
		cellRepo:    cellRepo,
		contentRepo: contentRepo,
		movRepo:     movRepo,
	}
}

// Deposit deposita qty unidades de un producto en una celda activa validando
// la capacidad. Registra un movimiento ADJUSTMENT_PLUS: el depósito manual es
// una corrección, las recepciones usan RECEIPT vía el procesador de recepción.
func (uc *CellContentUseCase) Deposit(ctx context.Context, cellID string, in dto.DepositRequest, userID string) (*dto.CellContentResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: product_id y quantity > 0 requeridos", domain.ErrInvalidInput)
	}

	var result *entity.CellContent
	err := uc.txRunner.RunStock(ctx, func(
		cells repository.StorageCellRepository,
		contents repository.CellContentRepository,
		movements repository.StockMovementRepository,
	) error {
		content, err := uc.DepositInTx(cells, contents, movements,
			in.ProductID, cellID, in.Quantity, userID, entity.MovementAdjustmentPlus, MovementRef{})
		if err != nil {
			return err
		}
		result = content
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCellContentResponse(result, false), nil
}

// DepositInTx ejecuta un depósito usando los repositorios proporcionados
// (misma transacción del caller). Lo usa el procesador de recepción para que
// todas las posiciones de un documento compartan una sola transacción.
// Bloquea la fila de la celda (SELECT FOR UPDATE) y recalcula la ocupación por
// agregación dentro de la tx; dos depósitos concurrentes sobre la misma celda
// quedan serializados y no pueden violar la capacidad en conjunto.
func (uc *CellContentUseCase) DepositInTx(
	cells repository.StorageCellRepository,
	contents repository.CellContentRepository,
	movements repository.StockMovementRepository,
	productID, cellID string,
	qty int,
	userID, movementType string,
	ref MovementRef,
) (*entity.CellContent, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: cantidad a depositar debe ser positiva", domain.ErrInvalidInput)
	}

	cell, err := cells.GetForUpdate(cellID)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		return nil, fmt.Errorf("%w: celda %s", domain.ErrNotFound, cellID)
	}
	if !cell.IsActive {
		return nil, fmt.Errorf("%w: celda %s", domain.ErrInactiveCell, cell.Code)
	}

	occupancy, err := contents.SumByCell(cellID)
	if err != nil {
		return nil, err
	}
	if occupancy+qty > cell.Capacity {
		return nil, fmt.Errorf("%w: celda %s requiere %d, ocupación %d, capacidad %d",
			domain.ErrCapacityExceeded, cell.Code, qty, occupancy, cell.Capacity)
	}

	now := time.Now()
	content, err := contents.GetByProductAndCellForUpdate(productID, cellID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		content = &entity.CellContent{
			ID:            uuid.New().String(),
			ProductID:     productID,
			StorageCellID: cellID,
			Quantity:      qty,
			UpdatedAt:     now,
			CellCode:      cell.Code,
		}
	} else {
		content.Quantity += qty
		content.UpdatedAt = now
	}
	if err := contents.Upsert(content); err != nil {
		return nil, err
	}

	if err := movements.Create(&entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		StorageCellID:  cellID,
		Delta:          qty,
		Type:           movementType,
		UserID:         userID,
		InboundItemID:  ref.InboundItemID,
		OutboundItemID: ref.OutboundItemID,
		OccurredAt:     now,
	}); err != nil {
		return nil, err
	}
	return content, nil
}

// Withdraw retira qty unidades de una fila de contenido. Si la cantidad llega
// a cero la fila se elimina (estado terminal válido, no un error).
func (uc *CellContentUseCase) Withdraw(ctx context.Context, contentID string, in dto.WithdrawRequest, userID string) (*dto.CellContentResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity > 0 requerido", domain.ErrInvalidInput)
	}

	var result *entity.CellContent
	var removed bool
	err := uc.txRunner.RunStock(ctx, func(
		cells repository.StorageCellRepository,
		contents repository.CellContentRepository,
		movements repository.StockMovementRepository,
	) error {
		content, err := contents.GetByIDForUpdate(contentID)
		if err != nil {
			return err
		}
		if content == nil {
			return fmt.Errorf("%w: contenido %s", domain.ErrNotFound, contentID)
		}
		cell, err := cells.GetByID(content.StorageCellID)
		if err != nil {
			return err
		}
		if cell == nil {
			return fmt.Errorf("%w: celda %s", domain.ErrNotFound, content.StorageCellID)
		}
		if !cell.IsActive {
			return fmt.Errorf("%w: celda %s", domain.ErrInactiveCell, cell.Code)
		}
		removed, err = uc.WithdrawInTx(contents, movements, content, in.Quantity, userID, entity.MovementAdjustmentMinus, MovementRef{})
		if err != nil {
			return err
		}
		result = content
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCellContentResponse(result, removed), nil
}

// WithdrawInTx decrementa una fila de contenido ya bloqueada por el caller.
// Devuelve removed=true si la fila quedó en cero y fue eliminada.
func (uc *CellContentUseCase) WithdrawInTx(
	contents repository.CellContentRepository,
	movements repository.StockMovementRepository,
	content *entity.CellContent,
	qty int,
	userID, movementType string,
	ref MovementRef,
) (bool, error) {
	if qty <= 0 {
		return false, fmt.Errorf("%w: cantidad a retirar debe ser positiva", domain.ErrInvalidInput)
	}
	if content.Quantity < qty {
		return false, fmt.Errorf("%w: solicitado %d, disponible %d en celda %s",
			domain.ErrInsufficientStock, qty, content.Quantity, content.CellCode)
	}

	now := time.Now()
	content.Quantity -= qty
	content.UpdatedAt = now

	removed := false
	if content.Quantity == 0 {
		if err := contents.Delete(content.ID); err != nil {
			return false, err
		}
		removed = true
	} else {
		if err := contents.Upsert(content); err != nil {
			return false, err
		}
	}

	if err := movements.Create(&entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      content.ProductID,
		StorageCellID:  content.StorageCellID,
		Delta:          -qty,
		Type:           movementType,
		UserID:         userID,
		InboundItemID:  ref.InboundItemID,
		OutboundItemID: ref.OutboundItemID,
		OccurredAt:     now,
	}); err != nil {
		return false, err
	}
	return removed, nil
}

// AdjustQuantity fija la cantidad absoluta de una fila de contenido
// (corrección manual). Delta cero no registra movimiento ni muta nada; delta
// positivo revalida la capacidad contra el resto del contenido de la celda;
// newQty == 0 elimina la fila.
func (uc *CellContentUseCase) AdjustQuantity(ctx context.Context, contentID string, newQty int, userID string) (*dto.CellContentResponse, error) {
	if newQty < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}

	var result *entity.CellContent
	var removed bool
	err := uc.txRunner.RunStock(ctx, func(
		cells repository.StorageCellRepository,
		contents repository.CellContentRepository,
		movements repository.StockMovementRepository,
	) error {
		// Lectura inicial sin bloqueo solo para conocer la celda: el orden de
		// bloqueo es siempre celda y después fila de contenido, el mismo que
		// usa el depósito. Tomarlos al revés puede interbloquear un ajuste con
		// un depósito concurrente sobre la misma celda.
		existing, err := contents.GetByID(contentID)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%w: contenido %s", domain.ErrNotFound, contentID)
		}
		cell, err := cells.GetForUpdate(existing.StorageCellID)
		if err != nil {
			return err
		}
		if cell == nil {
			return fmt.Errorf("%w: celda %s", domain.ErrNotFound, existing.StorageCellID)
		}
		content, err := contents.GetByIDForUpdate(contentID)
		if err != nil {
			return err
		}
		if content == nil {
			return fmt.Errorf("%w: contenido %s", domain.ErrNotFound, contentID)
		}

		delta := newQty - content.Quantity
		if delta == 0 {
			result = content
			return nil
		}

		if delta > 0 {
			otherOccupancy, err := contents.SumByCellExcluding(cell.ID, content.ID)
			if err != nil {
				return err
			}
			if otherOccupancy+newQty > cell.Capacity {
				return fmt.Errorf("%w: celda %s nueva cantidad %d, resto %d, capacidad %d",
					domain.ErrCapacityExceeded, cell.Code, newQty, otherOccupancy, cell.Capacity)
			}
			content.Quantity = newQty
			content.UpdatedAt = time.Now()
			if err := contents.Upsert(content); err != nil {
				return err
			}
			if err := movements.Create(&entity.StockMovement{
				ID:            uuid.New().String(),
				ProductID:     content.ProductID,
				StorageCellID: content.StorageCellID,
				Delta:         delta,
				Type:          entity.MovementAdjustmentPlus,
				UserID:        userID,
				OccurredAt:    content.UpdatedAt,
			}); err != nil {
				return err
			}
			result = content
			return nil
		}

		// delta < 0: retiro parcial o total vía la misma ruta que Withdraw.
		removed, err = uc.WithdrawInTx(contents, movements, content, -delta, userID, entity.MovementAdjustmentMinus, MovementRef{})
		if err != nil {
			return err
		}
		result = content
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCellContentResponse(result, removed), nil
}

// ListCellContents devuelve el contenido de una celda con su ocupación actual.
func (uc *CellContentUseCase) ListCellContents(cellID string) (*dto.CellContentListResponse, error) {
	cell, err := uc.cellRepo.GetByID(cellID)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		return nil, fmt.Errorf("%w: celda %s", domain.ErrNotFound, cellID)
	}
	list, err := uc.contentRepo.ListByCell(cellID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CellContentResponse, 0, len(list))
	occupancy := 0
	for _, c := range list {
		items = append(items, *toCellContentResponse(c, false))
		occupancy += c.Quantity
	}
	return &dto.CellContentListResponse{
		Items:     items,
		Occupancy: occupancy,
		Capacity:  cell.Capacity,
	}, nil
}

// MovementsByProduct historial de movimientos de un producto (auditoría).
func (uc *CellContentUseCase) MovementsByProduct(productID string, from, to *time.Time, limit, offset int) (*dto.StockMovementListResponse, error) {
	list, err := uc.movRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementListResponse(list, limit, offset), nil
}

// MovementsByCell historial de movimientos de una celda (auditoría).
func (uc *CellContentUseCase) MovementsByCell(cellID string, from, to *time.Time, limit, offset int) (*dto.StockMovementListResponse, error) {
	list, err := uc.movRepo.ListByCell(cellID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementListResponse(list, limit, offset), nil
}

func toCellContentResponse(c *entity.CellContent, removed bool) *dto.CellContentResponse {
	if c == nil {
		return nil
	}
	return &dto.CellContentResponse{
		ID:            c.ID,
		ProductID:     c.ProductID,
		ProductName:   c.ProductName,
		ProductSKU:    c.ProductSKU,
		StorageCellID: c.StorageCellID,
		CellCode:      c.CellCode,
		Quantity:      c.Quantity,
		Removed:       removed,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toMovementListResponse(list []*entity.StockMovement, limit, offset int) *dto.StockMovementListResponse {
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.StockMovementResponse{
			ID:             m.ID,
			ProductID:      m.ProductID,
			StorageCellID:  m.StorageCellID,
			Delta:          m.Delta,
			Type:           m.Type,
			UserID:         m.UserID,
			InboundItemID:  m.InboundItemID,
			OutboundItemID: m.OutboundItemID,
			OccurredAt:     m.OccurredAt,
		})
	}
	return &dto.StockMovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
