package dto

// RegisterRequest crea tenant, usuario y membresía OWNER.
type RegisterRequest struct {
	Name       string `json:"name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	TenantName string `json:"tenantName" validate:"required,min=2"`
}

// RegisterResponse salida pública del registro.
type RegisterResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	TenantID string `json:"tenantId"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse token de sesión atado a un único tenant.
type LoginResponse struct {
	Token    string       `json:"token"`
	TenantID string       `json:"tenantId"`
	Role     string       `json:"role"`
	User     UserResponse `json:"user"`
}

// ForgotPasswordRequest solicitud de recuperación.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse respuesta neutra; ResetURL solo fuera de producción.
type ForgotPasswordResponse struct {
	Message  string `json:"message"`
	ResetURL string `json:"resetUrl,omitempty"`
}

// ResetPasswordRequest nueva contraseña con token de recuperación.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required,min=20"`
	TenantID string `json:"tenantId" validate:"required,uuid"`
	Password string `json:"password" validate:"required,min=6"`
}
