package repository

import "github.com/apetrovv/warehouse-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Search(term string, limit int) ([]*entity.Product, error)
	Delete(id string) error
}
