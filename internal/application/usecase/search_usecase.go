package usecase

import (
	"strings"

	"github.com/apetrovv/warehouse-api/internal/application/dto"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

// SearchUseCase busca productos (por nombre o SKU) y celdas (por código) para
// el buscador global. Los productos incluyen las celdas donde hay stock.
type SearchUseCase struct {
	productRepo repository.ProductRepository
	cellRepo    repository.StorageCellRepository
	contentRepo repository.CellContentRepository
}

// NewSearchUseCase construye el caso de uso.
func NewSearchUseCase(
	productRepo repository.ProductRepository,
	cellRepo repository.StorageCellRepository,
	contentRepo repository.CellContentRepository,
) *SearchUseCase {
	return &SearchUseCase{productRepo: productRepo, cellRepo: cellRepo, contentRepo: contentRepo}
}

// Search ejecuta la búsqueda global. Un término vacío devuelve lista vacía.
func (uc *SearchUseCase) Search(term string, limit int) ([]dto.SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []dto.SearchResult{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	results := make([]dto.SearchResult, 0, limit*2)

	products, err := uc.productRepo.Search(term, limit)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		contents, err := uc.contentRepo.ListByProduct(p.ID)
		if err != nil {
			return nil, err
		}
		locations := make([]dto.SearchLocation, 0, len(contents))
		for _, c := range contents {
			locations = append(locations, dto.SearchLocation{Code: c.CellCode})
		}
		results = append(results, dto.SearchResult{
			ID:        p.ID,
			Type:      "product",
			Name:      p.Name,
			SKU:       p.SKU,
			Locations: locations,
		})
	}

	cells, err := uc.cellRepo.Search(term, limit)
	if err != nil {
		return nil, err
	}
	for _, c := range cells {
		results = append(results, dto.SearchResult{
			ID:          c.ID,
			Type:        "storage-cell",
			Code:        c.Code,
			Description: c.Description,
		})
	}

	return results, nil
}
