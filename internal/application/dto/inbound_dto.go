package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInboundShipmentRequest entrada para crear un documento de recepción.
type CreateInboundShipmentRequest struct {
	DocumentNumber string     `json:"document_number"`
	Supplier       string     `json:"supplier,omitempty"`
	ExpectedDate   *time.Time `json:"expected_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// AddInboundItemRequest entrada para agregar una posición de recepción.
type AddInboundItemRequest struct {
	ProductID        string           `json:"product_id"`
	QuantityExpected int              `json:"quantity_expected"`
	QuantityReceived *int             `json:"quantity_received,omitempty"`
	TargetCellID     *string          `json:"target_storage_cell_id,omitempty"`
	PurchasePrice    *decimal.Decimal `json:"purchase_price_at_receipt,omitempty"`
}

// UpdateInboundItemRequest entrada para actualizar una posición de recepción.
// El producto de una posición existente no se puede cambiar.
type UpdateInboundItemRequest struct {
	QuantityExpected *int             `json:"quantity_expected,omitempty"`
	QuantityReceived *int             `json:"quantity_received,omitempty"`
	TargetCellID     *string          `json:"target_storage_cell_id,omitempty"`
	PurchasePrice    *decimal.Decimal `json:"purchase_price_at_receipt,omitempty"`
}

// InboundItemResponse salida de una posición de recepción.
type InboundItemResponse struct {
	ID               string           `json:"id"`
	ProductID        string           `json:"product_id"`
	ProductName      string           `json:"product_name,omitempty"`
	ProductSKU       string           `json:"product_sku,omitempty"`
	QuantityExpected int              `json:"quantity_expected"`
	QuantityReceived *int             `json:"quantity_received,omitempty"`
	TargetCellID     *string          `json:"target_storage_cell_id,omitempty"`
	CellCode         string           `json:"target_cell_code,omitempty"`
	PurchasePrice    *decimal.Decimal `json:"purchase_price_at_receipt,omitempty"`
}

// InboundShipmentResponse salida de un documento de recepción con posiciones.
type InboundShipmentResponse struct {
	ID                string                `json:"id"`
	DocumentNumber    string                `json:"document_number"`
	Supplier          string                `json:"supplier,omitempty"`
	Status            string                `json:"status"`
	ExpectedDate      *time.Time            `json:"expected_date,omitempty"`
	ActualReceiptDate *time.Time            `json:"actual_receipt_date,omitempty"`
	Notes             string                `json:"notes,omitempty"`
	CreatedBy         string                `json:"created_by"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	Items             []InboundItemResponse `json:"items"`
}

// InboundShipmentListResponse lista paginada de recepciones.
type InboundShipmentListResponse struct {
	Items []InboundShipmentResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
