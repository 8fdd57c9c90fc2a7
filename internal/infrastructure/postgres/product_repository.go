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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, unit_of_measure, purchase_price, min_stock_level, max_stock_level, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.UnitOfMeasure,
		product.PurchasePrice, product.MinStockLevel, product.MaxStockLevel,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitOfMeasure,
		&p.PurchasePrice, &p.MinStockLevel, &p.MaxStockLevel, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET sku = $2, name = $3, description = $4, unit_of_measure = $5,
		    purchase_price = $6, min_stock_level = $7, max_stock_level = $8, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.UnitOfMeasure,
		product.PurchasePrice, product.MinStockLevel, product.MaxStockLevel,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con paginación, ordenados por nombre.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Search busca productos por nombre o SKU (coincidencia parcial, sin
// distinguir mayúsculas).
func (r *ProductRepo) Search(term string, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Delete elimina un producto. Falla con Conflict si tiene stock o historial.
func (r *ProductRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto con stock o historial", domain.ErrConflict)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitOfMeasure,
			&p.PurchasePrice, &p.MinStockLevel, &p.MaxStockLevel, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
