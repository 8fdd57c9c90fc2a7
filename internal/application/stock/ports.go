package stock

import (
	"context"

	"github.com/apetrovv/warehouse-api/internal/domain/entity"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock:
// cualquier error hace rollback de todo lo escrito por el callback.
type TxRunner interface {
	// RunStock transacción para operaciones directas sobre contenido de celdas
	// (depósito, retiro, ajuste manual).
	RunStock(ctx context.Context, fn func(
		cells repository.StorageCellRepository,
		contents repository.CellContentRepository,
		movements repository.StockMovementRepository,
	) error) error

	// RunInbound transacción para procesar un documento de recepción.
	RunInbound(ctx context.Context, fn func(
		cells repository.StorageCellRepository,
		contents repository.CellContentRepository,
		movements repository.StockMovementRepository,
		shipments repository.InboundShipmentRepository,
	) error) error

	// RunOutbound transacción para procesar un documento de despacho.
	RunOutbound(ctx context.Context, fn func(
		cells repository.StorageCellRepository,
		contents repository.CellContentRepository,
		movements repository.StockMovementRepository,
		shipments repository.OutboundShipmentRepository,
	) error) error
}

// PackingListGenerator genera el documento de preparación (packing list) de un
// despacho. Implementado en infrastructure/pdf con Maroto.
type PackingListGenerator interface {
	GeneratePackingList(ctx context.Context, shipment *entity.OutboundShipment) ([]byte, error)
}

// MovementRef referencia opcional a la posición de documento que origina un
// movimiento de stock.
type MovementRef struct {
	InboundItemID  *string
	OutboundItemID *string
}
