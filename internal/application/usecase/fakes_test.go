package usecase_test

import (
	"strings"

	"github.com/apetrovv/warehouse-api/internal/domain/entity"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

// Fakes mínimos: se embebe la interfaz para no implementar los métodos que el
// caso de uso bajo prueba no toca (llamarlos haría panic, lo cual delata el
// acceso inesperado).

type fakeCellRepo struct {
	repository.StorageCellRepository
	cells map[string]*entity.StorageCell
}

func newFakeCellRepo() *fakeCellRepo {
	return &fakeCellRepo{cells: map[string]*entity.StorageCell{}}
}

func (r *fakeCellRepo) Create(cell *entity.StorageCell) error {
	cp := *cell
	r.cells[cell.ID] = &cp
	return nil
}

func (r *fakeCellRepo) GetByID(id string) (*entity.StorageCell, error) {
	c, ok := r.cells[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCellRepo) GetByCode(code string) (*entity.StorageCell, error) {
	for _, c := range r.cells {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCellRepo) Update(cell *entity.StorageCell) error {
	cp := *cell
	r.cells[cell.ID] = &cp
	return nil
}

func (r *fakeCellRepo) List(onlyActive bool, limit, offset int) ([]*entity.StorageCell, error) {
	var out []*entity.StorageCell
	for _, c := range r.cells {
		if onlyActive && !c.IsActive {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCellRepo) Search(term string, limit int) ([]*entity.StorageCell, error) {
	var out []*entity.StorageCell
	for _, c := range r.cells {
		if strings.Contains(strings.ToLower(c.Code), strings.ToLower(term)) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCellRepo) Delete(id string) error {
	delete(r.cells, id)
	return nil
}

type fakeContentRepo struct {
	repository.CellContentRepository
	contents []*entity.CellContent
}

func (r *fakeContentRepo) SumByCell(cellID string) (int, error) {
	total := 0
	for _, c := range r.contents {
		if c.StorageCellID == cellID {
			total += c.Quantity
		}
	}
	return total, nil
}

func (r *fakeContentRepo) CountByCell(cellID string) (int, error) {
	count := 0
	for _, c := range r.contents {
		if c.StorageCellID == cellID {
			count++
		}
	}
	return count, nil
}

func (r *fakeContentRepo) ListByProduct(productID string) ([]*entity.CellContent, error) {
	var out []*entity.CellContent
	for _, c := range r.contents {
		if c.ProductID == productID && c.Quantity > 0 {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	repository.ProductRepository
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Search(term string, limit int) ([]*entity.Product, error) {
	lt := strings.ToLower(term)
	var out []*entity.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), lt) || strings.Contains(strings.ToLower(p.SKU), lt) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func intPtr(n int) *int       { return &n }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }
