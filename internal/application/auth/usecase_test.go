package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/apetrovv/warehouse-api/internal/application/auth"
	"github.com/apetrovv/warehouse-api/internal/application/dto"
	"github.com/apetrovv/warehouse-api/internal/domain"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
	"github.com/apetrovv/warehouse-api/internal/domain/repository"
	pkgjwt "github.com/apetrovv/warehouse-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "warehouse-api-test"
)

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*entity.User
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func newAuthEnv(t *testing.T, username, password string, active bool) *auth.UseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeUserRepo{users: map[string]*entity.User{
		username: {
			ID:           "u1",
			Username:     username,
			PasswordHash: string(hash),
			FullName:     "Usuario de Prueba",
			Role:         entity.RoleWarehouseKeeper,
			IsActive:     active,
		},
	}}
	return auth.NewUseCase(repo, testSecret, testIssuer, 60)
}

func TestLogin_CredencialesValidasEmiteToken(t *testing.T) {
	uc := newAuthEnv(t, "bodeguero", "secreta123", true)

	out, err := uc.Login(dto.LoginRequest{Username: "bodeguero", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "bodeguero", out.User.Username)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, entity.RoleWarehouseKeeper, role)
}

// Usuario inexistente y contraseña incorrecta devuelven el mismo error: la
// respuesta no revela cuál de los dos falló.
func TestLogin_MismoErrorParaUsuarioYPassword(t *testing.T) {
	uc := newAuthEnv(t, "bodeguero", "secreta123", true)

	_, errBadUser := uc.Login(dto.LoginRequest{Username: "no-existe", Password: "secreta123"})
	_, errBadPass := uc.Login(dto.LoginRequest{Username: "bodeguero", Password: "incorrecta"})

	assert.ErrorIs(t, errBadUser, domain.ErrUnauthorized)
	assert.ErrorIs(t, errBadPass, domain.ErrUnauthorized)
	assert.Equal(t, errBadUser.Error(), errBadPass.Error())
}

func TestLogin_UsuarioDesactivado(t *testing.T) {
	uc := newAuthEnv(t, "bodeguero", "secreta123", false)

	_, err := uc.Login(dto.LoginRequest{Username: "bodeguero", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_CredencialesVacias(t *testing.T) {
	uc := newAuthEnv(t, "bodeguero", "secreta123", true)

	_, err := uc.Login(dto.LoginRequest{Username: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
