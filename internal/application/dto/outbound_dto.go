package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOutboundShipmentRequest entrada para crear un documento de despacho.
type CreateOutboundShipmentRequest struct {
	DocumentNumber      string     `json:"document_number"`
	CustomerDetails     string     `json:"customer_details"`
	PlannedShippingDate *time.Time `json:"planned_shipping_date,omitempty"`
	Notes               string     `json:"notes,omitempty"`
}

// AddOutboundItemRequest entrada para agregar una posición de despacho.
type AddOutboundItemRequest struct {
	ProductID       string           `json:"product_id"`
	QuantityOrdered int              `json:"quantity_ordered"`
	SellingPrice    *decimal.Decimal `json:"selling_price_at_shipment,omitempty"`
}

// UpdateOutboundItemRequest entrada para actualizar una posición de despacho.
// Reducir quantity_ordered por debajo de quantity_shipped se rechaza.
type UpdateOutboundItemRequest struct {
	QuantityOrdered *int             `json:"quantity_ordered,omitempty"`
	SellingPrice    *decimal.Decimal `json:"selling_price_at_shipment,omitempty"`
}

// UpdateOutboundStatusRequest entrada para una transición administrativa de
// estado (ASSEMBLING, READY_FOR_SHIPMENT).
type UpdateOutboundStatusRequest struct {
	Status string `json:"status"`
}

// OutboundItemResponse salida de una posición de despacho.
type OutboundItemResponse struct {
	ID              string           `json:"id"`
	ProductID       string           `json:"product_id"`
	ProductName     string           `json:"product_name,omitempty"`
	ProductSKU      string           `json:"product_sku,omitempty"`
	QuantityOrdered int              `json:"quantity_ordered"`
	QuantityShipped int              `json:"quantity_shipped"`
	SellingPrice    *decimal.Decimal `json:"selling_price_at_shipment,omitempty"`
}

// OutboundShipmentResponse salida de un documento de despacho con posiciones.
type OutboundShipmentResponse struct {
	ID                  string                 `json:"id"`
	DocumentNumber      string                 `json:"document_number"`
	CustomerDetails     string                 `json:"customer_details,omitempty"`
	Status              string                 `json:"status"`
	PlannedShippingDate *time.Time             `json:"planned_shipping_date,omitempty"`
	ActualShippingDate  *time.Time             `json:"actual_shipping_date,omitempty"`
	Notes               string                 `json:"notes,omitempty"`
	CreatedBy           string                 `json:"created_by"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
	Items               []OutboundItemResponse `json:"items"`
}

// OutboundShipmentListResponse lista paginada de despachos.
type OutboundShipmentListResponse struct {
	Items []OutboundShipmentResponse `json:"items"`
	Page  PageResponse               `json:"page"`
}
