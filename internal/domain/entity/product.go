package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (SKU único).
type Product struct {
	ID            string
	SKU           string
	Name          string
	Description   string
	UnitOfMeasure string
	PurchasePrice *decimal.Decimal
	MinStockLevel *int
	MaxStockLevel *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
