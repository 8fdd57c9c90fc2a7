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

var _ repository.OutboundShipmentRepository = (*OutboundShipmentRepo)(nil)

const outboundColumns = `id, document_number, customer_details, status, planned_shipping_date, actual_shipping_date, notes, created_by, created_at, updated_at`

// OutboundShipmentRepo implementación del puerto OutboundShipmentRepository
// sobre PostgreSQL (usable con pool o tx).
type OutboundShipmentRepo struct {
	q Querier
}

// NewOutboundShipmentRepository construye el adaptador de persistencia para
// documentos de despacho.
func NewOutboundShipmentRepository(q Querier) *OutboundShipmentRepo {
	return &OutboundShipmentRepo{q: q}
}

// Create persiste la cabecera de un documento.
func (r *OutboundShipmentRepo) Create(s *entity.OutboundShipment) error {
	query := `
		INSERT INTO outbound_shipments (` + outboundColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.DocumentNumber, s.CustomerDetails, s.Status, s.PlannedShippingDate,
		s.ActualShippingDate, s.Notes, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert outbound shipment: %w", err)
	}
	return nil
}

// GetByID obtiene un documento con sus posiciones.
func (r *OutboundShipmentRepo) GetByID(id string) (*entity.OutboundShipment, error) {
	return r.getOne(`SELECT `+outboundColumns+` FROM outbound_shipments WHERE id = $1`, id)
}

// GetByNumber obtiene un documento por número.
func (r *OutboundShipmentRepo) GetByNumber(documentNumber string) (*entity.OutboundShipment, error) {
	return r.getOne(`SELECT `+outboundColumns+` FROM outbound_shipments WHERE document_number = $1`, documentNumber)
}

// GetForUpdate bloquea la cabecera durante la transacción de proceso.
func (r *OutboundShipmentRepo) GetForUpdate(id string) (*entity.OutboundShipment, error) {
	return r.getOne(`SELECT `+outboundColumns+` FROM outbound_shipments WHERE id = $1 FOR UPDATE`, id)
}

func (r *OutboundShipmentRepo) getOne(query string, arg any) (*entity.OutboundShipment, error) {
	var s entity.OutboundShipment
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&s.ID, &s.DocumentNumber, &s.CustomerDetails, &s.Status, &s.PlannedShippingDate,
		&s.ActualShippingDate, &s.Notes, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outbound shipment: %w", err)
	}
	items, err := r.listItems(s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// List lista documentos (sin posiciones), más recientes primero.
func (r *OutboundShipmentRepo) List(limit, offset int) ([]*entity.OutboundShipment, error) {
	query := `SELECT ` + outboundColumns + ` FROM outbound_shipments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list outbound shipments: %w", err)
	}
	defer rows.Close()

	var shipments []*entity.OutboundShipment
	for rows.Next() {
		var s entity.OutboundShipment
		if err := rows.Scan(&s.ID, &s.DocumentNumber, &s.CustomerDetails, &s.Status, &s.PlannedShippingDate,
			&s.ActualShippingDate, &s.Notes, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan outbound shipment: %w", err)
		}
		shipments = append(shipments, &s)
	}
	return shipments, rows.Err()
}

// UpdateStatus cambia el estado y opcionalmente fija la fecha real de envío.
func (r *OutboundShipmentRepo) UpdateStatus(id, status string, actualShippingDate *time.Time) error {
	query := `
		UPDATE outbound_shipments
		SET status = $2, actual_shipping_date = COALESCE($3, actual_shipping_date), updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, actualShippingDate)
	if err != nil {
		return fmt.Errorf("update outbound status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddItem agrega una posición al documento.
func (r *OutboundShipmentRepo) AddItem(item *entity.OutboundItem) error {
	query := `
		INSERT INTO outbound_items (id, shipment_id, product_id, quantity_ordered, quantity_shipped, selling_price_at_shipment)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ShipmentID, item.ProductID, item.QuantityOrdered,
		item.QuantityShipped, item.SellingPrice,
	)
	if err != nil {
		return fmt.Errorf("insert outbound item: %w", err)
	}
	return nil
}

// GetItem obtiene una posición del documento.
func (r *OutboundShipmentRepo) GetItem(shipmentID, itemID string) (*entity.OutboundItem, error) {
	query := `
		SELECT ` + outboundItemColumns + `
		FROM outbound_items oi` + outboundItemJoins + `
		WHERE oi.shipment_id = $1 AND oi.id = $2`
	var it entity.OutboundItem
	err := r.q.QueryRow(context.Background(), query, shipmentID, itemID).Scan(
		&it.ID, &it.ShipmentID, &it.ProductID, &it.QuantityOrdered, &it.QuantityShipped,
		&it.SellingPrice, &it.ProductName, &it.ProductSKU,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outbound item: %w", err)
	}
	return &it, nil
}

// UpdateItem actualiza una posición (el producto no cambia).
func (r *OutboundShipmentRepo) UpdateItem(item *entity.OutboundItem) error {
	query := `
		UPDATE outbound_items
		SET quantity_ordered = $2, quantity_shipped = $3, selling_price_at_shipment = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuantityOrdered, item.QuantityShipped, item.SellingPrice,
	)
	if err != nil {
		return fmt.Errorf("update outbound item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RemoveItem elimina una posición.
func (r *OutboundShipmentRepo) RemoveItem(itemID string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM outbound_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete outbound item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const outboundItemColumns = `
	oi.id, oi.shipment_id, oi.product_id, oi.quantity_ordered, oi.quantity_shipped,
	oi.selling_price_at_shipment, p.name, p.sku`

const outboundItemJoins = `
	JOIN products p ON p.id = oi.product_id`

func (r *OutboundShipmentRepo) listItems(shipmentID string) ([]*entity.OutboundItem, error) {
	query := `
		SELECT ` + outboundItemColumns + `
		FROM outbound_items oi` + outboundItemJoins + `
		WHERE oi.shipment_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list outbound items: %w", err)
	}
	defer rows.Close()

	var items []*entity.OutboundItem
	for rows.Next() {
		var it entity.OutboundItem
		if err := rows.Scan(&it.ID, &it.ShipmentID, &it.ProductID, &it.QuantityOrdered,
			&it.QuantityShipped, &it.SellingPrice, &it.ProductName, &it.ProductSKU); err != nil {
			return nil, fmt.Errorf("scan outbound item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
