package entity

import "time"

// CellContent representa la cantidad de un producto en una celda.
// Única por (product_id, storage_cell_id); se crea con el primer depósito y
// se elimina cuando la cantidad llega a cero.
// Invariante: sum(quantity) por celda <= StorageCell.Capacity.
type CellContent struct {
	ID            string
	ProductID     string
	StorageCellID string
	Quantity      int // siempre > 0 mientras la fila exista
	UpdatedAt     time.Time

	// Datos denormalizados para listados (solo lectura, no se persisten aquí).
	ProductName string
	ProductSKU  string
	CellCode    string
}
