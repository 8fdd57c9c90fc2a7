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

// OutboundUseCase gestiona documentos de despacho: cabecera, posiciones,
// transiciones de estado y el procesamiento transaccional que retira el stock
// de las celdas según la estrategia de asignación.
type OutboundUseCase struct {
	txRunner    TxRunner
	shipRepo    repository.OutboundShipmentRepository
	productRepo repository.ProductRepository
	contentUC   *CellContentUseCase
	strategy    AllocationStrategy
	packingList PackingListGenerator
}

// NewOutboundUseCase construye el caso de uso. strategy nil usa la estrategia
// de asignación por defecto (más antiguo primero).
func NewOutboundUseCase(
	txRunner TxRunner,
	shipRepo repository.OutboundShipmentRepository,
	productRepo repository.ProductRepository,
	contentUC *CellContentUseCase,
	packingList PackingListGenerator,
	strategy AllocationStrategy,
) *OutboundUseCase {
	if strategy == nil {
		strategy = OldestFirstStrategy{}
	}
	return &OutboundUseCase{
		txRunner:    txRunner,
		shipRepo:    shipRepo,
		productRepo: productRepo,
		contentUC:   contentUC,
		strategy:    strategy,
		packingList: packingList,
	}
}

// Create crea la cabecera del documento con número único en estado NEW.
func (uc *OutboundUseCase) Create(in dto.CreateOutboundShipmentRequest, userID string) (*dto.OutboundShipmentResponse, error) {
	if in.DocumentNumber == "" {
		return nil, fmt.Errorf("%w: document_number requerido", domain.ErrInvalidInput)
	}
	existing, err := uc.shipRepo.GetByNumber(in.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: despacho %s ya existe", domain.ErrDuplicate, in.DocumentNumber)
	}
	now := time.Now()
	shipment := &entity.OutboundShipment{
		ID:                  uuid.New().String(),
		DocumentNumber:      in.DocumentNumber,
		CustomerDetails:     in.CustomerDetails,
		Status:              entity.OutboundNew,
		PlannedShippingDate: in.PlannedShippingDate,
		Notes:               in.Notes,
		CreatedBy:           userID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.shipRepo.Create(shipment); err != nil {
		return nil, err
	}
	return toOutboundResponse(shipment), nil
}

// GetByID obtiene un documento de despacho con sus posiciones.
func (uc *OutboundUseCase) GetByID(id string) (*dto.OutboundShipmentResponse, error) {
	shipment, err := uc.getShipment(id)
	if err != nil {
		return nil, err
	}
	return toOutboundResponse(shipment), nil
}

// List lista documentos de despacho con paginación.
func (uc *OutboundUseCase) List(limit, offset int) (*dto.OutboundShipmentListResponse, error) {
	list, err := uc.shipRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OutboundShipmentResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toOutboundResponse(s))
	}
	return &dto.OutboundShipmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// AddItem agrega una posición; con la primera posición un documento NEW pasa
// automáticamente a PENDING_ASSEMBLY.
func (uc *OutboundUseCase) AddItem(shipmentID string, in dto.AddOutboundItemRequest) (*dto.OutboundShipmentResponse, error) {
	if in.ProductID == "" || in.QuantityOrdered <= 0 {
		return nil, fmt.Errorf("%w: product_id y quantity_ordered > 0 requeridos", domain.ErrInvalidInput)
	}
	shipment, err := uc.getShipment(shipmentID)
	if err != nil {
		return nil, err
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
	item := &entity.OutboundItem{
		ID:              uuid.New().String(),
		ShipmentID:      shipmentID,
		ProductID:       in.ProductID,
		QuantityOrdered: in.QuantityOrdered,
		SellingPrice:    in.SellingPrice,
	}
	if err := uc.shipRepo.AddItem(item); err != nil {
		return nil, err
	}
	if shipment.Status == entity.OutboundNew {
		if err := uc.shipRepo.UpdateStatus(shipmentID, entity.OutboundPendingAssembly, nil); err != nil {
			return nil, err
		}
	}
	return uc.GetByID(shipmentID)
}

// UpdateItem actualiza una posición. Reducir la cantidad pedida por debajo de
// lo ya despachado se rechaza.
func (uc *OutboundUseCase) UpdateItem(shipmentID, itemID string, in dto.UpdateOutboundItemRequest) (*dto.OutboundShipmentResponse, error) {
	shipment, err := uc.getShipment(shipmentID)
	if err != nil {
		return nil, err
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
	if in.QuantityOrdered != nil {
		if *in.QuantityOrdered <= 0 {
			return nil, fmt.Errorf("%w: quantity_ordered > 0 requerido", domain.ErrInvalidInput)
		}
		if *in.QuantityOrdered < item.QuantityShipped {
			return nil, fmt.Errorf("%w: quantity_ordered %d menor que lo ya despachado %d",
				domain.ErrInvalidInput, *in.QuantityOrdered, item.QuantityShipped)
		}
		item.QuantityOrdered = *in.QuantityOrdered
	}
	if in.SellingPrice != nil {
		item.SellingPrice = in.SellingPrice
	}
	if err := uc.shipRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return uc.GetByID(shipmentID)
}

// RemoveItem elimina una posición mientras el documento sea modificable.
func (uc *OutboundUseCase) RemoveItem(shipmentID, itemID string) (*dto.OutboundShipmentResponse, error) {
	shipment, err := uc.getShipment(shipmentID)
	if err != nil {
		return nil, err
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
	if item.QuantityShipped > 0 {
		return nil, fmt.Errorf("%w: la posición ya tiene %d unidades despachadas", domain.ErrConflict, item.QuantityShipped)
	}
	if err := uc.shipRepo.RemoveItem(itemID); err != nil {
		return nil, err
	}
	return uc.GetByID(shipmentID)
}

// UpdateStatus aplica una transición administrativa del ciclo de armado.
// SHIPPED solo se alcanza vía ProcessDispatch; CANCELLED vía Cancel.
func (uc *OutboundUseCase) UpdateStatus(shipmentID, status string) (*dto.OutboundShipmentResponse, error) {
	shipment, err := uc.getShipment(shipmentID)
	if err != nil {
		return nil, err
	}
	allowed := map[string][]string{
		entity.OutboundPendingAssembly:  {entity.OutboundAssembling},
		entity.OutboundAssembling:       {entity.OutboundReadyForShipment, entity.OutboundPendingAssembly},
		entity.OutboundReadyForShipment: {entity.OutboundAssembling},
	}
	ok := false
	for _, next := range allowed[shipment.Status] {
		if next == status {
			ok = true
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: transición %s -> %s no permitida", domain.ErrInvalidState, shipment.Status, status)
	}
	if err := uc.shipRepo.UpdateStatus(shipmentID, status, nil); err != nil {
		return nil, err
	}
	return uc.GetByID(shipmentID)
}

// Cancel cancela administrativamente un documento aún no despachado.
func (uc *OutboundUseCase) Cancel(shipmentID string) (*dto.OutboundShipmentResponse, error) {
	shipment, err := uc.getShipment(shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment.Status == entity.OutboundShipped || shipment.Status == entity.OutboundCancelled {
		return nil, fmt.Errorf("%w: no se puede cancelar en estado %s", domain.ErrInvalidState, shipment.Status)
	}
	if err := uc.shipRepo.UpdateStatus(shipmentID, entity.OutboundCancelled, nil); err != nil {
		return nil, err
	}
	return uc.GetByID(shipmentID)
}

// ProcessDispatch completa el despacho: en una sola transacción relee el
// documento con bloqueo, planifica con la estrategia de asignación de qué
// celdas retirar cada producto y ejecuta los retiros. La disponibilidad total
// se valida antes de retirar nada (fail fast) y cualquier faltante revierte la
// transacción completa: nunca se persiste un despacho parcial. Un documento
// SHIPPED o CANCELLED rechaza la llamada, así que repetir process tras un
// éxito no puede duplicar retiros.
func (uc *OutboundUseCase) ProcessDispatch(ctx context.Context, shipmentID, userID string) (*dto.OutboundShipmentResponse, error) {
	err := uc.txRunner.RunOutbound(ctx, func(
		cells repository.StorageCellRepository,
		contents repository.CellContentRepository,
		movements repository.StockMovementRepository,
		shipments repository.OutboundShipmentRepository,
	) error {
		shipment, err := shipments.GetForUpdate(shipmentID)
		if err != nil {
			return err
		}
		if shipment == nil {
			return fmt.Errorf("%w: despacho %s", domain.ErrNotFound, shipmentID)
		}
		if !shipment.Dispatchable() {
			return fmt.Errorf("%w: despacho en estado %s", domain.ErrInvalidState, shipment.Status)
		}
		if len(shipment.Items) == 0 {
			return fmt.Errorf("%w: despacho %s", domain.ErrEmptyDocument, shipment.DocumentNumber)
		}

		for _, item := range shipment.Items {
			remaining := item.QuantityOrdered - item.QuantityShipped
			if remaining <= 0 {
				continue
			}
			// Bloquea las filas candidatas (celdas activas, cantidad > 0,
			// más antiguas primero) y planifica los retiros.
			available, err := contents.ListAvailableByProduct(item.ProductID)
			if err != nil {
				return err
			}
			plan, err := uc.strategy.Plan(available, remaining)
			if err != nil {
				return fmt.Errorf("producto %q (SKU %s): %w", item.ProductName, item.ProductSKU, err)
			}
			itemID := item.ID
			for _, alloc := range plan {
				_, err := uc.contentUC.WithdrawInTx(contents, movements,
					alloc.Content, alloc.Quantity,
					userID, entity.MovementShipment, MovementRef{OutboundItemID: &itemID})
				if err != nil {
					return err
				}
			}
			item.QuantityShipped += remaining
			if err := shipments.UpdateItem(item); err != nil {
				return err
			}
		}

		// Conservación: se relee el documento dentro de la transacción y se
		// verifica sobre las filas persistidas, no sobre las posiciones en
		// memoria. Un aumento concurrente de lo pedido que alcanzó a
		// confirmarse hace fallar el despacho en vez de enviar de menos.
		final, err := shipments.GetByID(shipmentID)
		if err != nil {
			return err
		}
		if final == nil {
			return fmt.Errorf("%w: despacho %s", domain.ErrNotFound, shipmentID)
		}
		for _, item := range final.Items {
			if item.QuantityShipped < item.QuantityOrdered {
				return fmt.Errorf("%w: posición %s despachó %d de %d",
					domain.ErrPartialShipment, item.ID, item.QuantityShipped, item.QuantityOrdered)
			}
		}

		now := time.Now()
		return shipments.UpdateStatus(shipmentID, entity.OutboundShipped, &now)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(shipmentID)
}

// PackingListPDF genera el documento de preparación del despacho en PDF.
func (uc *OutboundUseCase) PackingListPDF(ctx context.Context, shipmentID string) ([]byte, error) {
	shipment, err := uc.getShipment(shipmentID)
	if err != nil {
		return nil, err
	}
	return uc.packingList.GeneratePackingList(ctx, shipment)
}

func (uc *OutboundUseCase) getShipment(id string) (*entity.OutboundShipment, error) {
	shipment, err := uc.shipRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, fmt.Errorf("%w: despacho %s", domain.ErrNotFound, id)
	}
	return shipment, nil
}

func toOutboundResponse(s *entity.OutboundShipment) *dto.OutboundShipmentResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.OutboundItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.OutboundItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			ProductSKU:      it.ProductSKU,
			QuantityOrdered: it.QuantityOrdered,
			QuantityShipped: it.QuantityShipped,
			SellingPrice:    it.SellingPrice,
		})
	}
	return &dto.OutboundShipmentResponse{
		ID:                  s.ID,
		DocumentNumber:      s.DocumentNumber,
		CustomerDetails:     s.CustomerDetails,
		Status:              s.Status,
		PlannedShippingDate: s.PlannedShippingDate,
		ActualShippingDate:  s.ActualShippingDate,
		Notes:               s.Notes,
		CreatedBy:           s.CreatedBy,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		Items:               items,
	}
}
