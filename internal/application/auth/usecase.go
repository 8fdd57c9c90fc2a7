package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/apetrovv/warehouse-api/internal/application/dto"
	"github.com/apetrovv/warehouse-api/internal/domain"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
	"github.com/apetrovv/warehouse-api/pkg/jwt"
)

// UseCase autentica usuarios y emite tokens JWT.
type UseCase struct {
	userRepo   repository.UserRepository
	secret     string
	issuer     string
	expMinutes int
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, secret, issuer string, expMinutes int) *UseCase {
	return &UseCase{userRepo: userRepo, secret: secret, issuer: issuer, expMinutes: expMinutes}
}

// Login valida credenciales y devuelve un token firmado con el usuario.
// Credenciales inválidas y usuario inexistente devuelven el mismo error.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password requeridos", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: usuario desactivado", domain.ErrForbidden)
	}
	token, err := jwt.Generate(uc.secret, user.ID, user.Role, uc.issuer, uc.expMinutes)
	if err != nil {
		return nil, fmt.Errorf("error generando token: %w", err)
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			FullName:  user.FullName,
			Role:      user.Role,
			IsActive:  user.IsActive,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
	}, nil
}
