package repository

import "github.com/apetrovv/warehouse-api/internal/domain/entity"

// CellContentRepository define el puerto de persistencia para CellContent (DIP).
// Toda mutación de contenido pasa por el gestor de contenido de celdas; ningún
// otro componente escribe estas filas directamente.
type CellContentRepository interface {
	GetByID(id string) (*entity.CellContent, error)
	GetByIDForUpdate(id string) (*entity.CellContent, error)
	GetByProductAndCell(productID, cellID string) (*entity.CellContent, error)
	GetByProductAndCellForUpdate(productID, cellID string) (*entity.CellContent, error)
	// ListAvailableByProduct devuelve el contenido con cantidad > 0 en celdas
	// activas, ordenado por última modificación ascendente (stock más antiguo
	// primero) y con las filas bloqueadas (FOR UPDATE) para el despacho.
	ListAvailableByProduct(productID string) ([]*entity.CellContent, error)
	// ListByProduct es la variante de solo lectura (sin bloqueo) para
	// consultas de ubicación.
	ListByProduct(productID string) ([]*entity.CellContent, error)
	ListByCell(cellID string) ([]*entity.CellContent, error)
	// SumByCell calcula la ocupación actual de la celda por agregación;
	// nunca se mantiene un contador aparte que pueda desviarse.
	SumByCell(cellID string) (int, error)
	SumByCellExcluding(cellID, contentID string) (int, error)
	CountByCell(cellID string) (int, error)
	Upsert(content *entity.CellContent) error
	Delete(id string) error
}
