package repository

import (
	"time"

	"github.com/apetrovv/warehouse-api/internal/domain/entity"
)

// InboundShipmentRepository define el puerto de persistencia para documentos
// de recepción y sus posiciones (DIP). El documento posee sus posiciones.
type InboundShipmentRepository interface {
	Create(shipment *entity.InboundShipment) error
	GetByID(id string) (*entity.InboundShipment, error)
	GetByNumber(documentNumber string) (*entity.InboundShipment, error)
	// GetForUpdate bloquea la cabecera durante la transacción de proceso y
	// devuelve el documento con posiciones releídas dentro de la misma tx.
	GetForUpdate(id string) (*entity.InboundShipment, error)
	List(limit, offset int) ([]*entity.InboundShipment, error)
	UpdateStatus(id, status string, actualReceiptDate *time.Time) error
	AddItem(item *entity.InboundItem) error
	GetItem(shipmentID, itemID string) (*entity.InboundItem, error)
	UpdateItem(item *entity.InboundItem) error
	RemoveItem(itemID string) error
}
