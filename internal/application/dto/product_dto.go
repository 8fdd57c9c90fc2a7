package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	UnitOfMeasure string           `json:"unit_of_measure"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	MinStockLevel *int             `json:"min_stock_level,omitempty"`
	MaxStockLevel *int             `json:"max_stock_level,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	SKU           *string          `json:"sku,omitempty"`
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	UnitOfMeasure *string          `json:"unit_of_measure,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	MinStockLevel *int             `json:"min_stock_level,omitempty"`
	MaxStockLevel *int             `json:"max_stock_level,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string           `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	UnitOfMeasure string           `json:"unit_of_measure"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	MinStockLevel *int             `json:"min_stock_level,omitempty"`
	MaxStockLevel *int             `json:"max_stock_level,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
