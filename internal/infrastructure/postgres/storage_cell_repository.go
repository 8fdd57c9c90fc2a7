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

var _ repository.StorageCellRepository = (*StorageCellRepo)(nil)

const cellColumns = `id, code, description, max_items_capacity, is_active, created_at, updated_at`

// StorageCellRepo implementación del puerto StorageCellRepository sobre
// PostgreSQL (usable con pool o tx).
type StorageCellRepo struct {
	q Querier
}

// NewStorageCellRepository construye el adaptador de persistencia para celdas.
func NewStorageCellRepository(q Querier) *StorageCellRepo {
	return &StorageCellRepo{q: q}
}

// Create persiste una nueva celda.
func (r *StorageCellRepo) Create(cell *entity.StorageCell) error {
	query := `
		INSERT INTO storage_cells (` + cellColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		cell.ID, cell.Code, cell.Description, cell.Capacity, cell.IsActive,
		cell.CreatedAt, cell.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert storage cell: %w", err)
	}
	return nil
}

// GetByID obtiene una celda por ID.
func (r *StorageCellRepo) GetByID(id string) (*entity.StorageCell, error) {
	return r.getOne(`SELECT `+cellColumns+` FROM storage_cells WHERE id = $1`, id)
}

// GetByCode obtiene una celda por código.
func (r *StorageCellRepo) GetByCode(code string) (*entity.StorageCell, error) {
	return r.getOne(`SELECT `+cellColumns+` FROM storage_cells WHERE code = $1`, code)
}

// GetForUpdate bloquea la fila de la celda (SELECT FOR UPDATE); serializa
// depósitos concurrentes sobre la misma celda. Solo tiene sentido dentro de
// una transacción.
func (r *StorageCellRepo) GetForUpdate(id string) (*entity.StorageCell, error) {
	return r.getOne(`SELECT `+cellColumns+` FROM storage_cells WHERE id = $1 FOR UPDATE`, id)
}

func (r *StorageCellRepo) getOne(query string, arg any) (*entity.StorageCell, error) {
	var c entity.StorageCell
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Code, &c.Description, &c.Capacity, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage cell: %w", err)
	}
	return &c, nil
}

// Update actualiza una celda existente.
func (r *StorageCellRepo) Update(cell *entity.StorageCell) error {
	query := `
		UPDATE storage_cells
		SET code = $2, description = $3, max_items_capacity = $4, is_active = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		cell.ID, cell.Code, cell.Description, cell.Capacity, cell.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update storage cell: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista celdas ordenadas por código; onlyActive filtra las desactivadas.
func (r *StorageCellRepo) List(onlyActive bool, limit, offset int) ([]*entity.StorageCell, error) {
	query := `SELECT ` + cellColumns + ` FROM storage_cells`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list storage cells: %w", err)
	}
	defer rows.Close()
	return scanCells(rows)
}

// Search busca celdas por código (coincidencia parcial, sin distinguir
// mayúsculas).
func (r *StorageCellRepo) Search(term string, limit int) ([]*entity.StorageCell, error) {
	query := `
		SELECT ` + cellColumns + `
		FROM storage_cells
		WHERE code ILIKE '%' || $1 || '%'
		ORDER BY code LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search storage cells: %w", err)
	}
	defer rows.Close()
	return scanCells(rows)
}

// Delete elimina una celda. La FK de contenidos impide borrar celdas ocupadas.
func (r *StorageCellRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM storage_cells WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: celda con contenido o historial", domain.ErrCellNotEmpty)
		}
		return fmt.Errorf("delete storage cell: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCells(rows pgx.Rows) ([]*entity.StorageCell, error) {
	var cells []*entity.StorageCell
	for rows.Next() {
		var c entity.StorageCell
		if err := rows.Scan(&c.ID, &c.Code, &c.Description, &c.Capacity, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage cell: %w", err)
		}
		cells = append(cells, &c)
	}
	return cells, rows.Err()
}
