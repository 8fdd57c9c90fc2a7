package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementReceipt         = "RECEIPT"          // depósito por recepción
	MovementShipment        = "SHIPMENT"         // retiro por despacho
	MovementAdjustmentPlus  = "ADJUSTMENT_PLUS"  // ajuste manual positivo
	MovementAdjustmentMinus = "ADJUSTMENT_MINUS" // ajuste manual negativo
)

// StockMovement es el registro inmutable de auditoría de cada cambio de
// cantidad. Nunca se actualiza ni se borra.
// Invariante: para cada (producto, celda) la suma de Delta reproduce la
// cantidad actual en CellContent.
type StockMovement struct {
	ID             string
	ProductID      string
	StorageCellID  string
	Delta          int    // con signo: positivo deposita, negativo retira
	Type           string // RECEIPT, SHIPMENT, ADJUSTMENT_PLUS, ADJUSTMENT_MINUS
	UserID         string
	InboundItemID  *string // posición de recepción que lo originó, si aplica
	OutboundItemID *string // posición de despacho que lo originó, si aplica
	OccurredAt     time.Time
}
