package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/apetrovv/warehouse-api/internal/application/dto"
	"github.com/apetrovv/warehouse-api/internal/domain"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

// UserUseCase gestiona usuarios del sistema. Las operaciones de escritura se
// exponen solo a MANAGER (el control está en el middleware HTTP).
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// Create crea un usuario con username único y contraseña hasheada con bcrypt.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password requeridos", domain.ErrInvalidInput)
	}
	if err := validateRole(in.Role); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: usuario %s ya existe", domain.ErrDuplicate, in.Username)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error generando hash de contraseña: %w", err)
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         in.Role,
		IsActive:     isActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrUserNotFound, id)
	}
	return toUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(limit, offset int) (*dto.UserListResponse, error) {
	users, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un usuario (contraseña, nombre, rol, activación).
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrUserNotFound, id)
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("%w: password no puede ser vacía", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("error generando hash de contraseña: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Role != nil {
		if err := validateRole(*in.Role); err != nil {
			return nil, err
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func validateRole(role string) error {
	switch role {
	case entity.RoleManager, entity.RoleWarehouseKeeper:
		return nil
	}
	return fmt.Errorf("%w: rol %q no válido", domain.ErrInvalidInput, role)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
