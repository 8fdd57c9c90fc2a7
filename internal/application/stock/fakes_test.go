package stock_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/apetrovv/warehouse-api/internal/application/stock"
	"github.com/apetrovv/warehouse-api/internal/domain"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un memStore compartido + repos que leen/escriben sobre él.
// El fakeTxRunner toma un snapshot antes del callback y lo restaura si este
// falla, reproduciendo la semántica todo-o-nada de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	cells     map[string]*entity.StorageCell
	contents  map[string]*entity.CellContent
	movements []*entity.StockMovement
	products  map[string]*entity.Product
	inbound   map[string]*entity.InboundShipment
	outbound  map[string]*entity.OutboundShipment
}

func newMemStore() *memStore {
	return &memStore{
		cells:    map[string]*entity.StorageCell{},
		contents: map[string]*entity.CellContent{},
		products: map[string]*entity.Product{},
		inbound:  map[string]*entity.InboundShipment{},
		outbound: map[string]*entity.OutboundShipment{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.cells {
		cp := *v
		c.cells[k] = &cp
	}
	for k, v := range s.contents {
		cp := *v
		c.contents[k] = &cp
	}
	c.movements = make([]*entity.StockMovement, len(s.movements))
	for i, m := range s.movements {
		cp := *m
		c.movements[i] = &cp
	}
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.inbound {
		c.inbound[k] = cloneInbound(v)
	}
	for k, v := range s.outbound {
		c.outbound[k] = cloneOutbound(v)
	}
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.cells = snap.cells
	s.contents = snap.contents
	s.movements = snap.movements
	s.products = snap.products
	s.inbound = snap.inbound
	s.outbound = snap.outbound
}

func cloneInbound(v *entity.InboundShipment) *entity.InboundShipment {
	cp := *v
	cp.Items = make([]*entity.InboundItem, len(v.Items))
	for i, it := range v.Items {
		itcp := *it
		if it.QuantityReceived != nil {
			q := *it.QuantityReceived
			itcp.QuantityReceived = &q
		}
		if it.TargetCellID != nil {
			t := *it.TargetCellID
			itcp.TargetCellID = &t
		}
		cp.Items[i] = &itcp
	}
	return &cp
}

func cloneOutbound(v *entity.OutboundShipment) *entity.OutboundShipment {
	cp := *v
	cp.Items = make([]*entity.OutboundItem, len(v.Items))
	for i, it := range v.Items {
		itcp := *it
		cp.Items[i] = &itcp
	}
	return &cp
}

// enrich completa los denormalizados de una fila de contenido.
func (s *memStore) enrich(c *entity.CellContent) *entity.CellContent {
	cp := *c
	if p, ok := s.products[c.ProductID]; ok {
		cp.ProductName = p.Name
		cp.ProductSKU = p.SKU
	}
	if cell, ok := s.cells[c.StorageCellID]; ok {
		cp.CellCode = cell.Code
	}
	return &cp
}

// ── StorageCellRepository ────────────────────────────────────────────────────

type memCellRepo struct{ s *memStore }

func (r *memCellRepo) Create(cell *entity.StorageCell) error {
	cp := *cell
	r.s.cells[cell.ID] = &cp
	return nil
}

func (r *memCellRepo) GetByID(id string) (*entity.StorageCell, error) {
	c, ok := r.s.cells[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCellRepo) GetByCode(code string) (*entity.StorageCell, error) {
	for _, c := range r.s.cells {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCellRepo) GetForUpdate(id string) (*entity.StorageCell, error) { return r.GetByID(id) }

func (r *memCellRepo) Update(cell *entity.StorageCell) error {
	if _, ok := r.s.cells[cell.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *cell
	r.s.cells[cell.ID] = &cp
	return nil
}

func (r *memCellRepo) List(onlyActive bool, limit, offset int) ([]*entity.StorageCell, error) {
	var out []*entity.StorageCell
	for _, c := range r.s.cells {
		if onlyActive && !c.IsActive {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *memCellRepo) Search(term string, limit int) ([]*entity.StorageCell, error) {
	var out []*entity.StorageCell
	for _, c := range r.s.cells {
		if strings.Contains(strings.ToLower(c.Code), strings.ToLower(term)) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCellRepo) Delete(id string) error {
	if _, ok := r.s.cells[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.cells, id)
	return nil
}

// ── CellContentRepository ────────────────────────────────────────────────────

type memContentRepo struct{ s *memStore }

func (r *memContentRepo) GetByID(id string) (*entity.CellContent, error) {
	c, ok := r.s.contents[id]
	if !ok {
		return nil, nil
	}
	return r.s.enrich(c), nil
}

func (r *memContentRepo) GetByIDForUpdate(id string) (*entity.CellContent, error) {
	return r.GetByID(id)
}

func (r *memContentRepo) GetByProductAndCell(productID, cellID string) (*entity.CellContent, error) {
	for _, c := range r.s.contents {
		if c.ProductID == productID && c.StorageCellID == cellID {
			return r.s.enrich(c), nil
		}
	}
	return nil, nil
}

func (r *memContentRepo) GetByProductAndCellForUpdate(productID, cellID string) (*entity.CellContent, error) {
	return r.GetByProductAndCell(productID, cellID)
}

func (r *memContentRepo) ListAvailableByProduct(productID string) ([]*entity.CellContent, error) {
	var out []*entity.CellContent
	for _, c := range r.s.contents {
		cell, ok := r.s.cells[c.StorageCellID]
		if !ok || !cell.IsActive || c.Quantity <= 0 || c.ProductID != productID {
			continue
		}
		out = append(out, r.s.enrich(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}

func (r *memContentRepo) ListByProduct(productID string) ([]*entity.CellContent, error) {
	var out []*entity.CellContent
	for _, c := range r.s.contents {
		if c.ProductID == productID && c.Quantity > 0 {
			out = append(out, r.s.enrich(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CellCode < out[j].CellCode })
	return out, nil
}

func (r *memContentRepo) ListByCell(cellID string) ([]*entity.CellContent, error) {
	var out []*entity.CellContent
	for _, c := range r.s.contents {
		if c.StorageCellID == cellID {
			out = append(out, r.s.enrich(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

func (r *memContentRepo) SumByCell(cellID string) (int, error) {
	total := 0
	for _, c := range r.s.contents {
		if c.StorageCellID == cellID {
			total += c.Quantity
		}
	}
	return total, nil
}

func (r *memContentRepo) SumByCellExcluding(cellID, contentID string) (int, error) {
	total := 0
	for _, c := range r.s.contents {
		if c.StorageCellID == cellID && c.ID != contentID {
			total += c.Quantity
		}
	}
	return total, nil
}

func (r *memContentRepo) CountByCell(cellID string) (int, error) {
	count := 0
	for _, c := range r.s.contents {
		if c.StorageCellID == cellID {
			count++
		}
	}
	return count, nil
}

func (r *memContentRepo) Upsert(content *entity.CellContent) error {
	cp := *content
	r.s.contents[content.ID] = &cp
	return nil
}

func (r *memContentRepo) Delete(id string) error {
	if _, ok := r.s.contents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.contents, id)
	return nil
}

// ── StockMovementRepository ──────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByCell(cellID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.filter(func(m *entity.StockMovement) bool { return m.StorageCellID == cellID }, from, to), nil
}

func (r *memMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.filter(func(m *entity.StockMovement) bool { return m.ProductID == productID }, from, to), nil
}

func (r *memMovementRepo) filter(match func(*entity.StockMovement) bool, from, to *time.Time) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if !match(m) {
			continue
		}
		if from != nil && m.OccurredAt.Before(*from) {
			continue
		}
		if to != nil && m.OccurredAt.After(*to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out
}

// ── ProductRepository ────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Search(term string, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		lt := strings.ToLower(term)
		if strings.Contains(strings.ToLower(p.Name), lt) || strings.Contains(strings.ToLower(p.SKU), lt) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

// ── InboundShipmentRepository ────────────────────────────────────────────────

type memInboundRepo struct{ s *memStore }

func (r *memInboundRepo) Create(sh *entity.InboundShipment) error {
	r.s.inbound[sh.ID] = cloneInbound(sh)
	return nil
}

func (r *memInboundRepo) GetByID(id string) (*entity.InboundShipment, error) {
	sh, ok := r.s.inbound[id]
	if !ok {
		return nil, nil
	}
	cp := cloneInbound(sh)
	for _, it := range cp.Items {
		r.enrichItem(it)
	}
	return cp, nil
}

func (r *memInboundRepo) GetByNumber(num string) (*entity.InboundShipment, error) {
	for _, sh := range r.s.inbound {
		if sh.DocumentNumber == num {
			return r.GetByID(sh.ID)
		}
	}
	return nil, nil
}

func (r *memInboundRepo) GetForUpdate(id string) (*entity.InboundShipment, error) {
	return r.GetByID(id)
}

func (r *memInboundRepo) List(limit, offset int) ([]*entity.InboundShipment, error) {
	var out []*entity.InboundShipment
	for _, sh := range r.s.inbound {
		out = append(out, cloneInbound(sh))
	}
	return out, nil
}

func (r *memInboundRepo) UpdateStatus(id, status string, actualReceiptDate *time.Time) error {
	sh, ok := r.s.inbound[id]
	if !ok {
		return domain.ErrNotFound
	}
	sh.Status = status
	if actualReceiptDate != nil {
		sh.ActualReceiptDate = actualReceiptDate
	}
	return nil
}

func (r *memInboundRepo) AddItem(item *entity.InboundItem) error {
	sh, ok := r.s.inbound[item.ShipmentID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *item
	sh.Items = append(sh.Items, &cp)
	return nil
}

func (r *memInboundRepo) GetItem(shipmentID, itemID string) (*entity.InboundItem, error) {
	sh, ok := r.s.inbound[shipmentID]
	if !ok {
		return nil, nil
	}
	for _, it := range sh.Items {
		if it.ID == itemID {
			cp := *it
			r.enrichItem(&cp)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memInboundRepo) UpdateItem(item *entity.InboundItem) error {
	for _, sh := range r.s.inbound {
		for i, it := range sh.Items {
			if it.ID == item.ID {
				cp := *item
				sh.Items[i] = &cp
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *memInboundRepo) RemoveItem(itemID string) error {
	for _, sh := range r.s.inbound {
		for i, it := range sh.Items {
			if it.ID == itemID {
				sh.Items = append(sh.Items[:i], sh.Items[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *memInboundRepo) enrichItem(it *entity.InboundItem) {
	if p, ok := r.s.products[it.ProductID]; ok {
		it.ProductName = p.Name
		it.ProductSKU = p.SKU
	}
	if it.TargetCellID != nil {
		if c, ok := r.s.cells[*it.TargetCellID]; ok {
			it.CellCode = c.Code
		}
	}
}

// ── OutboundShipmentRepository ───────────────────────────────────────────────

type memOutboundRepo struct{ s *memStore }

func (r *memOutboundRepo) Create(sh *entity.OutboundShipment) error {
	r.s.outbound[sh.ID] = cloneOutbound(sh)
	return nil
}

func (r *memOutboundRepo) GetByID(id string) (*entity.OutboundShipment, error) {
	sh, ok := r.s.outbound[id]
	if !ok {
		return nil, nil
	}
	cp := cloneOutbound(sh)
	for _, it := range cp.Items {
		if p, ok := r.s.products[it.ProductID]; ok {
			it.ProductName = p.Name
			it.ProductSKU = p.SKU
		}
	}
	return cp, nil
}

func (r *memOutboundRepo) GetByNumber(num string) (*entity.OutboundShipment, error) {
	for _, sh := range r.s.outbound {
		if sh.DocumentNumber == num {
			return r.GetByID(sh.ID)
		}
	}
	return nil, nil
}

func (r *memOutboundRepo) GetForUpdate(id string) (*entity.OutboundShipment, error) {
	return r.GetByID(id)
}

func (r *memOutboundRepo) List(limit, offset int) ([]*entity.OutboundShipment, error) {
	var out []*entity.OutboundShipment
	for _, sh := range r.s.outbound {
		out = append(out, cloneOutbound(sh))
	}
	return out, nil
}

func (r *memOutboundRepo) UpdateStatus(id, status string, actualShippingDate *time.Time) error {
	sh, ok := r.s.outbound[id]
	if !ok {
		return domain.ErrNotFound
	}
	sh.Status = status
	if actualShippingDate != nil {
		sh.ActualShippingDate = actualShippingDate
	}
	return nil
}

func (r *memOutboundRepo) AddItem(item *entity.OutboundItem) error {
	sh, ok := r.s.outbound[item.ShipmentID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *item
	sh.Items = append(sh.Items, &cp)
	return nil
}

func (r *memOutboundRepo) GetItem(shipmentID, itemID string) (*entity.OutboundItem, error) {
	sh, ok := r.s.outbound[shipmentID]
	if !ok {
		return nil, nil
	}
	for _, it := range sh.Items {
		if it.ID == itemID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memOutboundRepo) UpdateItem(item *entity.OutboundItem) error {
	for _, sh := range r.s.outbound {
		for i, it := range sh.Items {
			if it.ID == item.ID {
				cp := *item
				sh.Items[i] = &cp
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *memOutboundRepo) RemoveItem(itemID string) error {
	for _, sh := range r.s.outbound {
		for i, it := range sh.Items {
			if it.ID == itemID {
				sh.Items = append(sh.Items[:i], sh.Items[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) RunStock(ctx context.Context, fn func(
	cells repository.StorageCellRepository,
	contents repository.CellContentRepository,
	movements repository.StockMovementRepository,
) error) error {
	snap := r.s.clone()
	if err := fn(&memCellRepo{r.s}, &memContentRepo{r.s}, &memMovementRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunInbound(ctx context.Context, fn func(
	cells repository.StorageCellRepository,
	contents repository.CellContentRepository,
	movements repository.StockMovementRepository,
	shipments repository.InboundShipmentRepository,
) error) error {
	snap := r.s.clone()
	if err := fn(&memCellRepo{r.s}, &memContentRepo{r.s}, &memMovementRepo{r.s}, &memInboundRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunOutbound(ctx context.Context, fn func(
	cells repository.StorageCellRepository,
	contents repository.CellContentRepository,
	movements repository.StockMovementRepository,
	shipments repository.OutboundShipmentRepository,
) error) error {
	snap := r.s.clone()
	if err := fn(&memCellRepo{r.s}, &memContentRepo{r.s}, &memMovementRepo{r.s}, &memOutboundRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

var _ stock.TxRunner = (*fakeTxRunner)(nil)

// fakePackingList evita depender del generador real en tests.
type fakePackingList struct{}

func (fakePackingList) GeneratePackingList(_ context.Context, _ *entity.OutboundShipment) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}
