package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del documento de recepción.
const (
	InboundPlanned    = "PLANNED"
	InboundInProgress = "IN_PROGRESS" // entra automáticamente con la primera posición
	InboundCompleted  = "COMPLETED"
	InboundCancelled  = "CANCELLED"
)

// InboundShipment es la cabecera de un documento de recepción.
type InboundShipment struct {
	ID                string
	DocumentNumber    string // único
	Supplier          string
	Status            string
	ExpectedDate      *time.Time
	ActualReceiptDate *time.Time
	Notes             string
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Items             []*InboundItem
}

// InboundItem es una posición del documento de recepción.
type InboundItem struct {
	ID               string
	ShipmentID       string
	ProductID        string
	QuantityExpected int
	QuantityReceived *int    // nil = todavía sin confirmar; se normaliza a 0 al procesar
	TargetCellID     *string // celda de destino, obligatoria para depositar
	PurchasePrice    *decimal.Decimal

	// Denormalizados para respuestas y mensajes de error.
	ProductName string
	ProductSKU  string
	CellCode    string
}

// Modifiable indica si el documento admite cambios en sus posiciones.
func (s *InboundShipment) Modifiable() bool {
	return s.Status == InboundPlanned || s.Status == InboundInProgress
}
