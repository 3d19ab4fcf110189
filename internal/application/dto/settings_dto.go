package dto

// TenantResponse datos públicos del tenant.
type TenantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SettingsResponse GET /api/settings.
type SettingsResponse struct {
	Tenant TenantResponse `json:"tenant"`
	User   struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

// UpdateTenantRequest renombrar el tenant.
type UpdateTenantRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

// UpdatePasswordRequest cambio de contraseña del usuario en sesión.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,min=6"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}
