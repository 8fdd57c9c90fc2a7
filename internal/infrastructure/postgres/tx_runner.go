package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apetrovv/warehouse-api/internal/application/stock"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks del motor de stock dentro de una transacción
// PostgreSQL. Cualquier error del callback hace rollback de todo.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock transacción para depósito, retiro y ajuste manual.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	cells repository.StorageCellRepository,
	contents repository.CellContentRepository,
	movements repository.StockMovementRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewStorageCellRepository(tx), NewCellContentRepository(tx), NewStockMovementRepository(tx))
	})
}

// RunInbound transacción para procesar un documento de recepción.
func (r *TxRunner) RunInbound(ctx context.Context, fn func(
	cells repository.StorageCellRepository,
	contents repository.CellContentRepository,
	movements repository.StockMovementRepository,
	shipments repository.InboundShipmentRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewStorageCellRepository(tx), NewCellContentRepository(tx),
			NewStockMovementRepository(tx), NewInboundShipmentRepository(tx))
	})
}

// RunOutbound transacción para procesar un documento de despacho.
func (r *TxRunner) RunOutbound(ctx context.Context, fn func(
	cells repository.StorageCellRepository,
	contents repository.CellContentRepository,
	movements repository.StockMovementRepository,
	shipments repository.OutboundShipmentRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewStorageCellRepository(tx), NewCellContentRepository(tx),
			NewStockMovementRepository(tx), NewOutboundShipmentRepository(tx))
	})
}
