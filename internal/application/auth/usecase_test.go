package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewAuthUseCase(
		auth.AdminCredentials{Email: "admin@tienda.co", PasswordHash: string(hash)},
		auth.JWTConfig{Secret: "secreto", ExpMinutes: 30, Issuer: "tienda-api"},
	)
}

func TestLogin_OK(t *testing.T) {
	uc := newAuth(t)

	out, err := uc.Login(dto.LoginRequest{Email: " ADMIN@tienda.co ", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, 1800, out.ExpiresIn)

	_, role, err := pkgjwt.Parse("secreto", out.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.Login(dto.LoginRequest{Email: "admin@tienda.co", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(dto.LoginRequest{Email: "otro@tienda.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_SinAdminConfigurado(t *testing.T) {
	uc := auth.NewAuthUseCase(auth.AdminCredentials{}, auth.JWTConfig{Secret: "s"})
	_, err := uc.Login(dto.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
