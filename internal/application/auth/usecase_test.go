package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/textil-erp/internal/application/auth"
	"github.com/jhoicas/textil-erp/internal/application/dto"
	"github.com/jhoicas/textil-erp/internal/domain"
	"github.com/jhoicas/textil-erp/internal/domain/entity"
	"github.com/jhoicas/textil-erp/internal/infrastructure/memory"
	"github.com/jhoicas/textil-erp/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Repos().Users, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "textil-erp"})
	return uc, store
}

func TestRegisterUser(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "  Ana@Taller.CO ", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@taller.co", u.Email)
	assert.Equal(t, entity.RoleVendedor, u.Role, "rol por defecto")
	assert.Equal(t, entity.UserStatusActive, u.Status)
	assert.Equal(t, "ana@taller.co", u.Name)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@taller.co", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "luis@taller.co", Password: "secreta123", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "bodega@taller.co", Password: "secreta123", Role: entity.RoleBodeguero})
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Repos().Users.Create(ctx, &entity.User{
		ID: "u-inactivo", Email: "baja@taller.co", PasswordHash: string(hash),
		Role: entity.RoleVendedor, Status: entity.UserStatusInactive, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	t.Run("credenciales válidas", func(t *testing.T) {
		out, err := uc.Login(ctx, dto.LoginRequest{Email: "BODEGA@taller.co", Password: "secreta123"})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleBodeguero, out.User.Role)

		userID, role, err := jwt.Parse(secret, out.Token)
		require.NoError(t, err)
		assert.Equal(t, out.User.ID, userID)
		assert.Equal(t, entity.RoleBodeguero, role)
	})

	t.Run("password incorrecto", func(t *testing.T) {
		_, err := uc.Login(ctx, dto.LoginRequest{Email: "bodega@taller.co", Password: "equivocada"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("usuario inexistente", func(t *testing.T) {
		_, err := uc.Login(ctx, dto.LoginRequest{Email: "nadie@taller.co", Password: "secreta123"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("usuario inactivo", func(t *testing.T) {
		_, err := uc.Login(ctx, dto.LoginRequest{Email: "baja@taller.co", Password: "secreta123"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
