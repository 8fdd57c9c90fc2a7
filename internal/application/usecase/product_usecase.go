package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apetrovv/warehouse-api/internal/application/dto"
	"github.com/apetrovv/warehouse-api/internal/domain"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

// ProductUseCase gestiona el catálogo de productos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create crea un producto con SKU único.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: sku y name requeridos", domain.ErrInvalidInput)
	}
	existing, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: producto con SKU %s ya existe", domain.ErrDuplicate, in.SKU)
	}
	if err := validateStockLevels(in.MinStockLevel, in.MaxStockLevel); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		UnitOfMeasure: in.UnitOfMeasure,
		PurchasePrice: in.PurchasePrice,
		MinStockLevel: in.MinStockLevel,
		MaxStockLevel: in.MaxStockLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un producto; el cambio de SKU exige unicidad.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		if *in.SKU == "" {
			return nil, fmt.Errorf("%w: sku no puede ser vacío", domain.ErrInvalidInput)
		}
		other, err := uc.productRepo.GetBySKU(*in.SKU)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, fmt.Errorf("%w: producto con SKU %s ya existe", domain.ErrDuplicate, *in.SKU)
		}
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name no puede ser vacío", domain.ErrInvalidInput)
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = in.PurchasePrice
	}
	if in.MinStockLevel != nil {
		product.MinStockLevel = in.MinStockLevel
	}
	if in.MaxStockLevel != nil {
		product.MaxStockLevel = in.MaxStockLevel
	}
	if err := validateStockLevels(product.MinStockLevel, product.MaxStockLevel); err != nil {
		return nil, err
	}
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto del catálogo. La FK de contenidos y posiciones
// de documento impide borrar productos con stock o historial.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return uc.productRepo.Delete(id)
}

func validateStockLevels(min, max *int) error {
	if min != nil && *min < 0 {
		return fmt.Errorf("%w: min_stock_level no puede ser negativo", domain.ErrInvalidInput)
	}
	if max != nil && *max < 0 {
		return fmt.Errorf("%w: max_stock_level no puede ser negativo", domain.ErrInvalidInput)
	}
	if min != nil && max != nil && *max < *min {
		return fmt.Errorf("%w: max_stock_level menor que min_stock_level", domain.ErrInvalidInput)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		UnitOfMeasure: p.UnitOfMeasure,
		PurchasePrice: p.PurchasePrice,
		MinStockLevel: p.MinStockLevel,
		MaxStockLevel: p.MaxStockLevel,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
