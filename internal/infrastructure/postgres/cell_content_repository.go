package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/apetrovv/warehouse-api/internal/domain"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

var _ repository.CellContentRepository = (*CellContentRepo)(nil)

// contentColumns incluye los denormalizados de producto y celda para listados
// y mensajes de error.
const contentColumns = `
	cc.id, cc.product_id, cc.storage_cell_id, cc.quantity, cc.updated_at,
	p.name, p.sku, sc.code`

const contentJoins = `
	JOIN products p ON p.id = cc.product_id
	JOIN storage_cells sc ON sc.id = cc.storage_cell_id`

// CellContentRepo implementación del puerto CellContentRepository sobre
// PostgreSQL (usable con pool o tx).
type CellContentRepo struct {
	q Querier
}

// NewCellContentRepository construye el adaptador de persistencia para
// contenido de celdas.
func NewCellContentRepository(q Querier) *CellContentRepo {
	return &CellContentRepo{q: q}
}

// GetByID obtiene una fila de contenido por ID.
func (r *CellContentRepo) GetByID(id string) (*entity.CellContent, error) {
	return r.getOne(`SELECT `+contentColumns+` FROM cell_contents cc`+contentJoins+` WHERE cc.id = $1`, id)
}

// GetByIDForUpdate obtiene y bloquea una fila de contenido. El FOR UPDATE OF
// limita el bloqueo a cell_contents; las tablas unidas no se bloquean.
func (r *CellContentRepo) GetByIDForUpdate(id string) (*entity.CellContent, error) {
	return r.getOne(`SELECT `+contentColumns+` FROM cell_contents cc`+contentJoins+
		` WHERE cc.id = $1 FOR UPDATE OF cc`, id)
}

// GetByProductAndCell obtiene la fila única de (producto, celda).
func (r *CellContentRepo) GetByProductAndCell(productID, cellID string) (*entity.CellContent, error) {
	return r.getOne(`SELECT `+contentColumns+` FROM cell_contents cc`+contentJoins+
		` WHERE cc.product_id = $1 AND cc.storage_cell_id = $2`, productID, cellID)
}

// GetByProductAndCellForUpdate obtiene y bloquea la fila única de (producto, celda).
func (r *CellContentRepo) GetByProductAndCellForUpdate(productID, cellID string) (*entity.CellContent, error) {
	return r.getOne(`SELECT `+contentColumns+` FROM cell_contents cc`+contentJoins+
		` WHERE cc.product_id = $1 AND cc.storage_cell_id = $2 FOR UPDATE OF cc`, productID, cellID)
}

func (r *CellContentRepo) getOne(query string, args ...any) (*entity.CellContent, error) {
	var c entity.CellContent
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.ProductID, &c.StorageCellID, &c.Quantity, &c.UpdatedAt,
		&c.ProductName, &c.ProductSKU, &c.CellCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cell content: %w", err)
	}
	return &c, nil
}

// ListAvailableByProduct devuelve el contenido disponible del producto en
// celdas activas, stock más antiguo primero, con las filas bloqueadas para el
// despacho.
func (r *CellContentRepo) ListAvailableByProduct(productID string) ([]*entity.CellContent, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM cell_contents cc` + contentJoins + `
		WHERE cc.product_id = $1 AND sc.is_active AND cc.quantity > 0
		ORDER BY cc.updated_at ASC
		FOR UPDATE OF cc`
	return r.list(query, productID)
}

// ListByProduct es la variante de solo lectura para consultas de ubicación.
func (r *CellContentRepo) ListByProduct(productID string) ([]*entity.CellContent, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM cell_contents cc` + contentJoins + `
		WHERE cc.product_id = $1 AND cc.quantity > 0
		ORDER BY sc.code`
	return r.list(query, productID)
}

// ListByCell lista el contenido de una celda ordenado por producto.
func (r *CellContentRepo) ListByCell(cellID string) ([]*entity.CellContent, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM cell_contents cc` + contentJoins + `
		WHERE cc.storage_cell_id = $1
		ORDER BY p.name`
	return r.list(query, cellID)
}

func (r *CellContentRepo) list(query string, args ...any) ([]*entity.CellContent, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cell contents: %w", err)
	}
	defer rows.Close()

	var contents []*entity.CellContent
	for rows.Next() {
		var c entity.CellContent
		if err := rows.Scan(&c.ID, &c.ProductID, &c.StorageCellID, &c.Quantity, &c.UpdatedAt,
			&c.ProductName, &c.ProductSKU, &c.CellCode); err != nil {
			return nil, fmt.Errorf("scan cell content: %w", err)
		}
		contents = append(contents, &c)
	}
	return contents, rows.Err()
}

// SumByCell calcula la ocupación actual por agregación.
func (r *CellContentRepo) SumByCell(cellID string) (int, error) {
	return r.sum(`SELECT COALESCE(SUM(quantity), 0) FROM cell_contents WHERE storage_cell_id = $1`, cellID)
}

// SumByCellExcluding calcula la ocupación excluyendo una fila (para validar
// ajustes sobre esa misma fila).
func (r *CellContentRepo) SumByCellExcluding(cellID, contentID string) (int, error) {
	return r.sum(`SELECT COALESCE(SUM(quantity), 0) FROM cell_contents
		WHERE storage_cell_id = $1 AND id <> $2`, cellID, contentID)
}

// CountByCell cuenta las filas de contenido de una celda.
func (r *CellContentRepo) CountByCell(cellID string) (int, error) {
	return r.sum(`SELECT COUNT(*) FROM cell_contents WHERE storage_cell_id = $1`, cellID)
}

func (r *CellContentRepo) sum(query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("aggregate cell contents: %w", err)
	}
	return n, nil
}

// Upsert inserta o actualiza la fila única de (producto, celda).
func (r *CellContentRepo) Upsert(content *entity.CellContent) error {
	query := `
		INSERT INTO cell_contents (id, product_id, storage_cell_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, storage_cell_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		content.ID, content.ProductID, content.StorageCellID, content.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert cell content: %w", err)
	}
	return nil
}

// Delete elimina una fila de contenido (cantidad llegó a cero).
func (r *CellContentRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM cell_contents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cell content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
