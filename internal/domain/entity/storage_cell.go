package entity

import "time"

// StorageCell representa una celda física de almacenamiento con capacidad
// uniforme en unidades (simplificación: no hay dimensionado por producto).
type StorageCell struct {
	ID          string
	Code        string // único, ej. "A-01-01"
	Description string
	Capacity    int // max_items_capacity, >= 1
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
