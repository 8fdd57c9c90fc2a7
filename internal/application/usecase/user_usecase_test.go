package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/apetrovv/warehouse-api/internal/application/dto"
	"github.com/apetrovv/warehouse-api/internal/application/usecase"
	"github.com/apetrovv/warehouse-api/internal/domain"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
)

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func TestUserCreate_HasheaLaContrasena(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(dto.CreateUserRequest{
		Username: "bodeguero", Password: "secreta123", Role: entity.RoleWarehouseKeeper})
	require.NoError(t, err)
	assert.True(t, out.IsActive, "activo por defecto")

	stored := repo.users[out.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash, "la contraseña nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")))
}

func TestUserCreate_UsernameDuplicado(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	_, err := uc.Create(dto.CreateUserRequest{Username: "ana", Password: "x1", Role: entity.RoleManager})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateUserRequest{Username: "ana", Password: "x2", Role: entity.RoleManager})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserCreate_RolInvalido(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	_, err := uc.Create(dto.CreateUserRequest{Username: "ana", Password: "x", Role: "SUPERADMIN"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUpdate_RehashSoloSiCambiaLaContrasena(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)
	out, err := uc.Create(dto.CreateUserRequest{
		Username: "ana", Password: "original", Role: entity.RoleManager})
	require.NoError(t, err)
	originalHash := repo.users[out.ID].PasswordHash

	_, err = uc.Update(out.ID, dto.UpdateUserRequest{FullName: strPtr("Ana Gómez")})
	require.NoError(t, err)
	assert.Equal(t, originalHash, repo.users[out.ID].PasswordHash,
		"actualizar otros campos no debe tocar el hash")

	_, err = uc.Update(out.ID, dto.UpdateUserRequest{Password: strPtr("nueva")})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, repo.users[out.ID].PasswordHash)
}

func TestUserGetByID_NoExistente(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())
	_, err := uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
