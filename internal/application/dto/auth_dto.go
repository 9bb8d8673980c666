package dto

// LoginRequest entrada para login del administrador.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
