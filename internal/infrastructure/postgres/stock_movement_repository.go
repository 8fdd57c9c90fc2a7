package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/apetrovv/warehouse-api/internal/domain/entity"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL. El registro es de solo inserción.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de persistencia para
// movimientos de stock.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, storage_cell_id, delta, type, user_id, inbound_item_id, outbound_item_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.StorageCellID, m.Delta, m.Type, m.UserID,
		m.InboundItemID, m.OutboundItemID, m.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByCell lista movimientos de una celda, más recientes primero, con
// filtro opcional de rango de fechas.
func (r *StockMovementRepo) ListByCell(cellID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list("storage_cell_id", cellID, from, to, limit, offset)
}

// ListByProduct lista movimientos de un producto, más recientes primero, con
// filtro opcional de rango de fechas.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list("product_id", productID, from, to, limit, offset)
}

func (r *StockMovementRepo) list(column, id string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, storage_cell_id, delta, type, user_id, inbound_item_id, outbound_item_id, occurred_at
		FROM stock_movements
		WHERE ` + column + ` = $1
		  AND ($2::timestamptz IS NULL OR occurred_at >= $2)
		  AND ($3::timestamptz IS NULL OR occurred_at <= $3)
		ORDER BY occurred_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, id, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.StorageCellID, &m.Delta, &m.Type,
			&m.UserID, &m.InboundItemID, &m.OutboundItemID, &m.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
