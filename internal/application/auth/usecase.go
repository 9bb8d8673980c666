package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// RoleAdmin único rol del panel: administra catálogo e inventario.
const RoleAdmin = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminCredentials credenciales del administrador (password como hash bcrypt).
type AdminCredentials struct {
	Email        string
	PasswordHash string
}

// AuthUseCase login del administrador de la tienda.
type AuthUseCase struct {
	admin  AdminCredentials
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(admin AdminCredentials, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{admin: admin, jwtCfg: jwtCfg}
}

// Login verifica email/password contra las credenciales configuradas y genera el JWT.
// Cualquier fallo de credenciales devuelve domain.ErrUnauthorized, sin distinguir la causa.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.admin.Email == "" || uc.admin.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if !strings.EqualFold(strings.TrimSpace(in.Email), uc.admin.Email) {
		// Igual se compara el hash para no revelar por tiempo de respuesta si el email existe.
		_ = bcrypt.CompareHashAndPassword([]byte(uc.admin.PasswordHash), []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.admin.Email, RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Email:     uc.admin.Email,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
