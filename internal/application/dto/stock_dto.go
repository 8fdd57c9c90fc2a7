package dto

import "time"

// DepositRequest body para POST /api/storage-cells/:id/contents.
type DepositRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// WithdrawRequest body para POST /api/storage-cells/contents/:contentId/withdraw.
type WithdrawRequest struct {
	Quantity int `json:"quantity"`
}

// AdjustQuantityRequest body para PATCH /api/storage-cells/contents/:contentId/quantity.
type AdjustQuantityRequest struct {
	Quantity int `json:"quantity"` // cantidad absoluta resultante; 0 elimina la fila
}

// CellContentResponse salida de una fila de contenido. Removed=true indica que
// la operación dejó la fila en cero y fue eliminada (estado terminal válido).
type CellContentResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name,omitempty"`
	ProductSKU    string    `json:"product_sku,omitempty"`
	StorageCellID string    `json:"storage_cell_id"`
	CellCode      string    `json:"cell_code,omitempty"`
	Quantity      int       `json:"quantity"`
	Removed       bool      `json:"removed,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CellContentListResponse contenido de una celda más su ocupación.
type CellContentListResponse struct {
	Items     []CellContentResponse `json:"items"`
	Occupancy int                   `json:"current_occupancy"`
	Capacity  int                   `json:"max_items_capacity"`
}

// StockMovementResponse salida de un movimiento del registro de auditoría.
type StockMovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	StorageCellID  string    `json:"storage_cell_id"`
	Delta          int       `json:"quantity_changed"`
	Type           string    `json:"type"`
	UserID         string    `json:"user_id"`
	InboundItemID  *string   `json:"inbound_shipment_item_id,omitempty"`
	OutboundItemID *string   `json:"outbound_shipment_item_id,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// StockMovementListResponse lista paginada de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
