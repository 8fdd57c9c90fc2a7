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

// StorageCellUseCase gestiona el catálogo de celdas de almacenamiento.
type StorageCellUseCase struct {
	cellRepo    repository.StorageCellRepository
	contentRepo repository.CellContentRepository
}

// NewStorageCellUseCase construye el caso de uso.
func NewStorageCellUseCase(cellRepo repository.StorageCellRepository, contentRepo repository.CellContentRepository) *StorageCellUseCase {
	return &StorageCellUseCase{cellRepo: cellRepo, contentRepo: contentRepo}
}

// Create crea una celda con código único y capacidad >= 1.
func (uc *StorageCellUseCase) Create(in dto.CreateStorageCellRequest) (*dto.StorageCellResponse, error) {
	if in.Code == "" {
		return nil, fmt.Errorf("%w: code requerido", domain.ErrInvalidInput)
	}
	if in.Capacity < 1 {
		return nil, fmt.Errorf("%w: max_items_capacity debe ser >= 1", domain.ErrInvalidInput)
	}
	existing, err := uc.cellRepo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: celda con código %s ya existe", domain.ErrDuplicate, in.Code)
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	now := time.Now()
	cell := &entity.StorageCell{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Description: in.Description,
		Capacity:    in.Capacity,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.cellRepo.Create(cell); err != nil {
		return nil, err
	}
	return uc.toResponse(cell)
}

// GetByID obtiene una celda con su ocupación actual.
func (uc *StorageCellUseCase) GetByID(id string) (*dto.StorageCellResponse, error) {
	cell, err := uc.cellRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		return nil, fmt.Errorf("%w: celda %s", domain.ErrNotFound, id)
	}
	return uc.toResponse(cell)
}

// List lista celdas (opcionalmente solo activas) con ocupación.
func (uc *StorageCellUseCase) List(onlyActive bool, limit, offset int) (*dto.StorageCellListResponse, error) {
	cells, err := uc.cellRepo.List(onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StorageCellResponse, 0, len(cells))
	for _, c := range cells {
		resp, err := uc.toResponse(c)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.StorageCellListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza una celda. Reducir la capacidad por debajo de la ocupación
// actual se rechaza; el contenido existente nunca queda en violación.
func (uc *StorageCellUseCase) Update(id string, in dto.UpdateStorageCellRequest) (*dto.StorageCellResponse, error) {
	cell, err := uc.cellRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		return nil, fmt.Errorf("%w: celda %s", domain.ErrNotFound, id)
	}
	if in.Code != nil && *in.Code != cell.Code {
		if *in.Code == "" {
			return nil, fmt.Errorf("%w: code no puede ser vacío", domain.ErrInvalidInput)
		}
		other, err := uc.cellRepo.GetByCode(*in.Code)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, fmt.Errorf("%w: celda con código %s ya existe", domain.ErrDuplicate, *in.Code)
		}
		cell.Code = *in.Code
	}
	if in.Description != nil {
		cell.Description = *in.Description
	}
	if in.Capacity != nil {
		if *in.Capacity < 1 {
			return nil, fmt.Errorf("%w: max_items_capacity debe ser >= 1", domain.ErrInvalidInput)
		}
		occupancy, err := uc.contentRepo.SumByCell(id)
		if err != nil {
			return nil, err
		}
		if *in.Capacity < occupancy {
			return nil, fmt.Errorf("%w: capacidad %d menor que la ocupación actual %d",
				domain.ErrConflict, *in.Capacity, occupancy)
		}
		cell.Capacity = *in.Capacity
	}
	if in.IsActive != nil {
		cell.IsActive = *in.IsActive
	}
	if err := uc.cellRepo.Update(cell); err != nil {
		return nil, err
	}
	return uc.toResponse(cell)
}

// Delete elimina una celda solo si no tiene contenido.
func (uc *StorageCellUseCase) Delete(id string) error {
	cell, err := uc.cellRepo.GetByID(id)
	if err != nil {
		return err
	}
	if cell == nil {
		return fmt.Errorf("%w: celda %s", domain.ErrNotFound, id)
	}
	count, err := uc.contentRepo.CountByCell(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: celda %s tiene %d contenidos", domain.ErrCellNotEmpty, cell.Code, count)
	}
	return uc.cellRepo.Delete(id)
}

func (uc *StorageCellUseCase) toResponse(cell *entity.StorageCell) (*dto.StorageCellResponse, error) {
	occupancy, err := uc.contentRepo.SumByCell(cell.ID)
	if err != nil {
		return nil, err
	}
	return &dto.StorageCellResponse{
		ID:               cell.ID,
		Code:             cell.Code,
		Description:      cell.Description,
		Capacity:         cell.Capacity,
		IsActive:         cell.IsActive,
		CurrentOccupancy: occupancy,
		CreatedAt:        cell.CreatedAt,
		UpdatedAt:        cell.UpdatedAt,
	}, nil
}
