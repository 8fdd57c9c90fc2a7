package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del documento de despacho.
const (
	OutboundNew              = "NEW"
	OutboundPendingAssembly  = "PENDING_ASSEMBLY" // entra automáticamente con la primera posición
	OutboundAssembling       = "ASSEMBLING"
	OutboundReadyForShipment = "READY_FOR_SHIPMENT"
	OutboundShipped          = "SHIPPED"
	OutboundCancelled        = "CANCELLED"
)

// OutboundShipment es la cabecera de un documento de despacho.
type OutboundShipment struct {
	ID                  string
	DocumentNumber      string // único
	CustomerDetails     string
	Status              string
	PlannedShippingDate *time.Time
	ActualShippingDate  *time.Time
	Notes               string
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Items               []*OutboundItem
}

// OutboundItem es una posición del documento de despacho.
type OutboundItem struct {
	ID              string
	ShipmentID      string
	ProductID       string
	QuantityOrdered int
	QuantityShipped int
	SellingPrice    *decimal.Decimal

	// Denormalizados para respuestas y mensajes de error.
	ProductName string
	ProductSKU  string
}

// Modifiable indica si el documento admite cambios en sus posiciones.
func (s *OutboundShipment) Modifiable() bool {
	switch s.Status {
	case OutboundNew, OutboundPendingAssembly, OutboundAssembling:
		return true
	}
	return false
}

// Dispatchable indica si el documento puede procesarse (despacharse).
func (s *OutboundShipment) Dispatchable() bool {
	switch s.Status {
	case OutboundPendingAssembly, OutboundAssembling, OutboundReadyForShipment:
		return true
	}
	return false
}
