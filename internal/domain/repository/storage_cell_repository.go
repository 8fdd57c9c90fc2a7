package repository

import "github.com/apetrovv/warehouse-api/internal/domain/entity"

// StorageCellRepository define el puerto de persistencia para StorageCell (DIP).
type StorageCellRepository interface {
	Create(cell *entity.StorageCell) error
	GetByID(id string) (*entity.StorageCell, error)
	GetByCode(code string) (*entity.StorageCell, error)
	// GetForUpdate bloquea la fila de la celda durante la transacción
	// (SELECT FOR UPDATE); serializa depósitos concurrentes sobre la misma celda.
	GetForUpdate(id string) (*entity.StorageCell, error)
	Update(cell *entity.StorageCell) error
	List(onlyActive bool, limit, offset int) ([]*entity.StorageCell, error)
	Search(term string, limit int) ([]*entity.StorageCell, error)
	Delete(id string) error
}
