package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luismorales81/agrocloud-sub002/internal/application/auth"
	"github.com/luismorales81/agrocloud-sub002/internal/application/dto"
	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/infrastructure/memory"
	"github.com/luismorales81/agrocloud-sub002/pkg/jwt"
)

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store := memory.NewStore()
	return auth.NewAuthUseCase(memory.NewUserRepository(store), auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "agrocloud-test",
	})
}

func TestRegisterAndLogin(t *testing.T) {
	uc := newAuth(t)

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "jefe@campo.com",
		Password: "secreta123",
		Nombre:   "Jefa de Campo",
		Rol:      entity.RolJefeCampo,
	})
	require.NoError(t, err)
	require.Equal(t, entity.RolJefeCampo, user.Rol)
	require.True(t, user.Activo)

	res, err := uc.Login(dto.LoginRequest{Email: "jefe@campo.com", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	userID, role, err := jwt.Parse("test-secret", res.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
	require.Equal(t, entity.RolJefeCampo, role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@b.com", Password: "x12345"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "a@b.com", Password: "y12345"})
	require.ErrorIs(t, err, domain.ErrEmailYaRegistrado)
}

func TestRegister_RolPorDefecto(t *testing.T) {
	uc := newAuth(t)

	user, err := uc.RegisterUser(dto.RegisterRequest{Email: "op@campo.com", Password: "x12345"})
	require.NoError(t, err)
	require.Equal(t, entity.RolOperario, user.Rol)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@b.com", Password: "correcta"})
	require.NoError(t, err)
	_, err = uc.Login(dto.LoginRequest{Email: "a@b.com", Password: "incorrecta"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@b.com", Password: "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
