package repository

import (
	"time"

	"github.com/apetrovv/warehouse-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el registro de
// movimientos (DIP). Solo inserta y lee: el registro es inmutable.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByCell(cellID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
