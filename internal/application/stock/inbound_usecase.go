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

// InboundUseCase gestiona documentos de recepción: cabecera, posiciones y el
// procesamiento transaccional que deposita lo recibido en sus celdas.
type InboundUseCase struct {
	txRunner    TxRunner
	shipRepo    repository.InboundShipmentRepository
	productRepo repository.ProductRepository
	cellRepo    repository.StorageCellRepository
	contentUC   *CellContentUseCase
}

// NewInboundUseCase construye el caso de uso.
func NewInboundUseCase(
	txRunner TxRunner,
	shipRepo repository.InboundShipmentRepository,
	productRepo repository.ProductRepository,
	cellRepo repository.StorageCellRepository,
	contentUC *CellContentUseCase,
) *InboundUseCase {
	return &InboundUseCase{
		txRunner:    txRunner,
		shipRepo:    shipRepo,
		productRepo: productRepo,
		cellRepo:    cellRepo,
		contentUC:   contentUC,
	}
}

// Create crea la cabecera del documento con número único en estado PLANNED.
func (uc *InboundUseCase) Create(in dto.CreateInboundShipmentRequest, userID string) (*dto.InboundShipmentResponse, error) {
	if in.DocumentNumber == "" {
		return nil, fmt.Errorf("%w: document_number requerido", domain.ErrInvalidInput)
	}
	existing, err := uc.shipRepo.GetByNumber(in.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: recepción %s ya existe", domain.ErrDuplicate, in.DocumentNumber)
	}
	now := time.Now()
	shipment := &entity.InboundShipment{
		ID:             uuid.New().String(),
		DocumentNumber: in.DocumentNumber,
		Supplier:       in.Supplier,
		Status:         entity.InboundPlanned,
		ExpectedDate:   in.ExpectedDate,
		Notes:          in.Notes,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.shipRepo.Create(shipment); err != nil {
		return nil, err
	}
	return toInboundResponse(shipment), nil
}

// GetByID obtiene un documento de recepción con sus posiciones.
func (uc *InboundUseCase) GetByID(id string) (*dto.InboundShipmentResponse, error) {
	shipment, err := uc.shipRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, fmt.Errorf("%w: recepción %s", domain.ErrNotFound, id)
	}
	return toInboundResponse(shipment), nil
}

// List lista documentos de recepción con paginación.
func (uc *InboundUseCase) List(limit, offset int) (*dto.InboundShipmentListResponse, error) {
	list, err := uc.shipRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InboundShipmentResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toInboundResponse(s))
	}
	return &dto.InboundShipmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// AddItem agrega una posición; con la primera posición un documento PLANNED
// pasa automáticamente a IN_PROGRESS.
func (uc *InboundUseCase) AddItem(shipmentID string, in dto.AddInboundItemRequest) (*dto.InboundShipmentResponse, error) {
	if in.ProductID == "" || in.QuantityExpected <= 0 {
		return nil, fmt.Errorf("%w: product_id y quantity_expected > 0 requeridos", domain.ErrInvalidInput)
	}
	shipment, err := uc.shipRepo.GetByID(shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, fmt.Errorf("%w: recepción %s", domain.ErrNotFound, shipmentID)
	}
	if !shipment.Modifiable() {
		return nil, fmt.Errorf("%w: no se pueden agregar posiciones en estado %s", domain.ErrInvalidState, shipment.Status)
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}
	if in.TargetCellID != nil {
		if err := uc.validateTargetCell(*in.TargetCellID); err != nil {
			return nil, err
		}
	}

	received := in.QuantityReceived
	if received == nil {
		// Por defecto se asume que llegó lo esperado; se puede corregir luego.
		qty := in.QuantityExpected
		received = &qty
	}
	item := &entity.InboundItem{
		ID:               uuid.New().String(),
		ShipmentID:       shipmentID,
		ProductID:        in.ProductID,
		QuantityExpected: in.QuantityExpected,
		QuantityReceived: received,
		TargetCellID:     in.TargetCellID,
		PurchasePrice:    in.PurchasePrice,
	}
	if err := uc.shipRepo.AddItem(item); err != nil {
		return nil, err
	}
	if shipment.Status == entity.InboundPlanned {
		if err := uc.shipRepo.UpdateStatus(shipmentID, entity.InboundInProgress, nil); err != nil {
			return nil, err
		}
	}
	return uc.GetByID(shipmentID)
}

// UpdateItem actualiza una posición mientras el documento sea modificable.
func (uc *InboundUseCase) UpdateItem(shipmentID, itemID string, in dto.UpdateInboundItemRequest) (*dto.InboundShipmentResponse, error) {
	shipment, err := uc.shipRepo.GetByID(shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, fmt.Errorf("%w: recepción %s", domain.ErrNotFound, shipmentID)
	}
	if !shipment.Modifiable() {
		return nil, fmt.Errorf("%w: no se pueden modificar posiciones en estado %s", domain.ErrInvalidState, shipment.Status)
	}
	item, err := uc.shipRepo.GetItem(shipmentID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: posición %s", domain.ErrNotFound, itemID)
	}

	if in.QuantityExpected != nil {
		if *in.QuantityExpected <= 0 {
			return nil, fmt.Errorf("%w: quantity_expected > 0 requerido", domain.ErrInvalidInput)
		}
		item.QuantityExpected = *in.QuantityExpected
	}
	if in.QuantityReceived != nil {
		if *in.QuantityReceived < 0 {
			return nil, fmt.Errorf("%w: quantity_received no puede ser negativo", domain.ErrInvalidInput)
		}
		item.QuantityReceived = in.QuantityReceived
	}
	if in.TargetCellID != nil {
		if err := uc.validateTargetCell(*in.TargetCellID); err != nil {
			return nil, err
		}
		item.TargetCellID = in.TargetCellID
	}
	if in.PurchasePrice != nil {
		item.PurchasePrice = in.PurchasePrice
	}
	if err := uc.shipRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return uc.GetByID(shipmentID)
}

// RemoveItem elimina una posición mientras el documento sea modificable.
func (uc *InboundUseCase) RemoveItem(shipmentID, itemID string) (*dto.InboundShipmentResponse, error) {
	shipment, err := uc.shipRepo.GetByID(shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, fmt.Errorf("%w: recepción %s", domain.ErrNotFound, shipmentID)
	}
	if !shipment.Modifiable() {
		return nil, fmt.Errorf("%w: no se pueden eliminar posiciones en estado %s", domain.ErrInvalidState, shipment.Status)
	}
	item, err := uc.shipRepo.GetItem(shipmentID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: posición %s", domain.ErrNotFound, itemID)
	}
	if err := uc.shipRepo.RemoveItem(itemID); err != nil {
		return nil, err
	}
	return uc.GetByID(shipmentID)
}

// Cancel cancela administrativamente un documento aún no procesado.
func (uc *InboundUseCase) Cancel(shipmentID string) (*dto.InboundShipmentResponse, error) {
	shipment, err := uc.shipRepo.GetByID(shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, fmt.Errorf("%w: recepción %s", domain.ErrNotFound, shipmentID)
	}
	if !shipment.Modifiable() {
		return nil, fmt.Errorf("%w: no se puede cancelar en estado %s", domain.ErrInvalidState, shipment.Status)
	}
	if err := uc.shipRepo.UpdateStatus(shipmentID, entity.InboundCancelled, nil); err != nil {
		return nil, err
	}
	return uc.GetByID(shipmentID)
}

// ProcessReceipt completa la recepción: en una sola transacción relee el
// documento con bloqueo, deposita lo recibido de cada posición en su celda de
// destino y marca el documento COMPLETED con la fecha real de recepción.
// Cualquier fallo (capacidad, celda faltante) revierte todos los depósitos y
// el cambio de estado: nunca se persiste una recepción parcial. Un documento
// COMPLETED o CANCELLED rechaza la llamada con InvalidState, por lo que
// repetir process tras un éxito no puede duplicar depósitos.
func (uc *InboundUseCase) ProcessReceipt(ctx context.Context, shipmentID, userID string) (*dto.InboundShipmentResponse, error) {
	err := uc.txRunner.RunInbound(ctx, func(
		cells repository.StorageCellRepository,
		contents repository.CellContentRepository,
		movements repository.StockMovementRepository,
		shipments repository.InboundShipmentRepository,
	) error {
		shipment, err := shipments.GetForUpdate(shipmentID)
		if err != nil {
			return err
		}
		if shipment == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, shipmentID)
		}
		if shipment.Status != entity.InboundPlanned && shipment.Status != entity.InboundInProgress {
			return fmt.Errorf("%w: recepción en estado %s", domain.ErrInvalidState, shipment.Status)
		}
		if len(shipment.Items) == 0 {
			return fmt.Errorf("%w: recepción %s", domain.ErrEmptyDocument, shipment.DocumentNumber)
		}

		for _, item := range shipment.Items {
			if item.QuantityReceived == nil || *item.QuantityReceived <= 0 {
				// Posición planificada pero no recibida: se normaliza a 0 y no
				// bloquea el resto del documento.
				if item.QuantityReceived == nil {
					zero := 0
					item.QuantityReceived = &zero
					if err := shipments.UpdateItem(item); err != nil {
						return err
					}
				}
				continue
			}
			if item.TargetCellID == nil {
				return fmt.Errorf("%w: producto %q (SKU %s)", domain.ErrMissingLocation, item.ProductName, item.ProductSKU)
			}
			itemID := item.ID
			_, err := uc.contentUC.DepositInTx(cells, contents, movements,
				item.ProductID, *item.TargetCellID, *item.QuantityReceived,
				userID, entity.MovementReceipt, MovementRef{InboundItemID: &itemID})
			if err != nil {
				return err
			}
		}

		now := time.Now()
		return shipments.UpdateStatus(shipmentID, entity.InboundCompleted, &now)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(shipmentID)
}

func (uc *InboundUseCase) validateTargetCell(cellID string) error {
	cell, err := uc.cellRepo.GetByID(cellID)
	if err != nil {
		return err
	}
	if cell == nil {
		return fmt.Errorf("%w: celda %s", domain.ErrNotFound, cellID)
	}
	if !cell.IsActive {
		return fmt.Errorf("%w: celda %s", domain.ErrInactiveCell, cell.Code)
	}
	return nil
}

func toInboundResponse(s *entity.InboundShipment) *dto.InboundShipmentResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.InboundItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.InboundItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			ProductSKU:       it.ProductSKU,
			QuantityExpected: it.QuantityExpected,
			QuantityReceived: it.QuantityReceived,
			TargetCellID:     it.TargetCellID,
			CellCode:         it.CellCode,
			PurchasePrice:    it.PurchasePrice,
		})
	}
	return &dto.InboundShipmentResponse{
		ID:                s.ID,
		DocumentNumber:    s.DocumentNumber,
		Supplier:          s.Supplier,
		Status:            s.Status,
		ExpectedDate:      s.ExpectedDate,
		ActualReceiptDate: s.ActualReceiptDate,
		Notes:             s.Notes,
		CreatedBy:         s.CreatedBy,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		Items:             items,
	}
}
