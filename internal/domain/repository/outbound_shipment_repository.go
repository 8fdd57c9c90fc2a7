package repository

import (
	"time"

	"github.com/apetrovv/warehouse-api/internal/domain/entity"
)

// OutboundShipmentRepository define el puerto de persistencia para documentos
// de despacho y sus posiciones (DIP). El documento posee sus posiciones.
type OutboundShipmentRepository interface {
	Create(shipment *entity.OutboundShipment) error
	GetByID(id string) (*entity.OutboundShipment, error)
	GetByNumber(documentNumber string) (*entity.OutboundShipment, error)
	GetForUpdate(id string) (*entity.OutboundShipment, error)
	List(limit, offset int) ([]*entity.OutboundShipment, error)
	UpdateStatus(id, status string, actualShippingDate *time.Time) error
	AddItem(item *entity.OutboundItem) error
	GetItem(shipmentID, itemID string) (*entity.OutboundItem, error)
	UpdateItem(item *entity.OutboundItem) error
	RemoveItem(itemID string) error
}
