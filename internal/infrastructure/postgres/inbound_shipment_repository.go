package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/apetrovv/warehouse-api/internal/domain"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

var _ repository.InboundShipmentRepository = (*InboundShipmentRepo)(nil)

const inboundColumns = `id, document_number, supplier, status, expected_date, actual_receipt_date, notes, created_by, created_at, updated_at`

// InboundShipmentRepo implementación del puerto InboundShipmentRepository
// sobre PostgreSQL (usable con pool o tx).
type InboundShipmentRepo struct {
	q Querier
}

// NewInboundShipmentRepository construye el adaptador de persistencia para
// documentos de recepción.
func NewInboundShipmentRepository(q Querier) *InboundShipmentRepo {
	return &InboundShipmentRepo{q: q}
}

// Create persiste la cabecera de un documento.
func (r *InboundShipmentRepo) Create(s *entity.InboundShipment) error {
	query := `
		INSERT INTO inbound_shipments (` + inboundColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.DocumentNumber, s.Supplier, s.Status, s.ExpectedDate,
		s.ActualReceiptDate, s.Notes, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inbound shipment: %w", err)
	}
	return nil
}

// GetByID obtiene un documento con sus posiciones.
func (r *InboundShipmentRepo) GetByID(id string) (*entity.InboundShipment, error) {
	return r.getOne(`SELECT `+inboundColumns+` FROM inbound_shipments WHERE id = $1`, id)
}

// GetByNumber obtiene un documento por número.
func (r *InboundShipmentRepo) GetByNumber(documentNumber string) (*entity.InboundShipment, error) {
	return r.getOne(`SELECT `+inboundColumns+` FROM inbound_shipments WHERE document_number = $1`, documentNumber)
}

// GetForUpdate bloquea la cabecera durante la transacción de proceso.
func (r *InboundShipmentRepo) GetForUpdate(id string) (*entity.InboundShipment, error) {
	return r.getOne(`SELECT `+inboundColumns+` FROM inbound_shipments WHERE id = $1 FOR UPDATE`, id)
}

func (r *InboundShipmentRepo) getOne(query string, arg any) (*entity.InboundShipment, error) {
	var s entity.InboundShipment
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&s.ID, &s.DocumentNumber, &s.Supplier, &s.Status, &s.ExpectedDate,
		&s.ActualReceiptDate, &s.Notes, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inbound shipment: %w", err)
	}
	items, err := r.listItems(s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// List lista documentos (sin posiciones), más recientes primero.
func (r *InboundShipmentRepo) List(limit, offset int) ([]*entity.InboundShipment, error) {
	query := `SELECT ` + inboundColumns + ` FROM inbound_shipments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inbound shipments: %w", err)
	}
	defer rows.Close()

	var shipments []*entity.InboundShipment
	for rows.Next() {
		var s entity.InboundShipment
		if err := rows.Scan(&s.ID, &s.DocumentNumber, &s.Supplier, &s.Status, &s.ExpectedDate,
			&s.ActualReceiptDate, &s.Notes, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inbound shipment: %w", err)
		}
		shipments = append(shipments, &s)
	}
	return shipments, rows.Err()
}

// UpdateStatus cambia el estado y opcionalmente fija la fecha real de
// recepción.
func (r *InboundShipmentRepo) UpdateStatus(id, status string, actualReceiptDate *time.Time) error {
	query := `
		UPDATE inbound_shipments
		SET status = $2, actual_receipt_date = COALESCE($3, actual_receipt_date), updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, actualReceiptDate)
	if err != nil {
		return fmt.Errorf("update inbound status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddItem agrega una posición al documento.
func (r *InboundShipmentRepo) AddItem(item *entity.InboundItem) error {
	query := `
		INSERT INTO inbound_items (id, shipment_id, product_id, quantity_expected, quantity_received, target_storage_cell_id, purchase_price_at_receipt)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ShipmentID, item.ProductID, item.QuantityExpected,
		item.QuantityReceived, item.TargetCellID, item.PurchasePrice,
	)
	if err != nil {
		return fmt.Errorf("insert inbound item: %w", err)
	}
	return nil
}

// GetItem obtiene una posición del documento.
func (r *InboundShipmentRepo) GetItem(shipmentID, itemID string) (*entity.InboundItem, error) {
	query := `
		SELECT ` + inboundItemColumns + `
		FROM inbound_items ii` + inboundItemJoins + `
		WHERE ii.shipment_id = $1 AND ii.id = $2`
	var it entity.InboundItem
	err := r.q.QueryRow(context.Background(), query, shipmentID, itemID).Scan(
		&it.ID, &it.ShipmentID, &it.ProductID, &it.QuantityExpected, &it.QuantityReceived,
		&it.TargetCellID, &it.PurchasePrice, &it.ProductName, &it.ProductSKU, &it.CellCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inbound item: %w", err)
	}
	return &it, nil
}

// UpdateItem actualiza una posición (el producto no cambia).
func (r *InboundShipmentRepo) UpdateItem(item *entity.InboundItem) error {
	query := `
		UPDATE inbound_items
		SET quantity_expected = $2, quantity_received = $3, target_storage_cell_id = $4, purchase_price_at_receipt = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuantityExpected, item.QuantityReceived, item.TargetCellID, item.PurchasePrice,
	)
	if err != nil {
		return fmt.Errorf("update inbound item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RemoveItem elimina una posición.
func (r *InboundShipmentRepo) RemoveItem(itemID string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM inbound_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete inbound item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const inboundItemColumns = `
	ii.id, ii.shipment_id, ii.product_id, ii.quantity_expected, ii.quantity_received,
	ii.target_storage_cell_id, ii.purchase_price_at_receipt, p.name, p.sku, COALESCE(sc.code, '')`

const inboundItemJoins = `
	JOIN products p ON p.id = ii.product_id
	LEFT JOIN storage_cells sc ON sc.id = ii.target_storage_cell_id`

func (r *InboundShipmentRepo) listItems(shipmentID string) ([]*entity.InboundItem, error) {
	query := `
		SELECT ` + inboundItemColumns + `
		FROM inbound_items ii` + inboundItemJoins + `
		WHERE ii.shipment_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list inbound items: %w", err)
	}
	defer rows.Close()

	var items []*entity.InboundItem
	for rows.Next() {
		var it entity.InboundItem
		if err := rows.Scan(&it.ID, &it.ShipmentID, &it.ProductID, &it.QuantityExpected,
			&it.QuantityReceived, &it.TargetCellID, &it.PurchasePrice,
			&it.ProductName, &it.ProductSKU, &it.CellCode); err != nil {
			return nil, fmt.Errorf("scan inbound item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
