package dto

import "time"

// CreateStorageCellRequest entrada para crear una celda.
type CreateStorageCellRequest struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Capacity    int    `json:"max_items_capacity"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// UpdateStorageCellRequest entrada para actualizar una celda.
type UpdateStorageCellRequest struct {
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
	Capacity    *int    `json:"max_items_capacity,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// StorageCellResponse salida de una celda con su ocupación actual.
type StorageCellResponse struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	Description      string    `json:"description,omitempty"`
	Capacity         int       `json:"max_items_capacity"`
	IsActive         bool      `json:"is_active"`
	CurrentOccupancy int       `json:"current_occupancy"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// StorageCellListResponse lista paginada de celdas.
type StorageCellListResponse struct {
	Items []StorageCellResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
