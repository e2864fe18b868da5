package dto

import "time"

// AdminValidateCredentialsRequest verificación de credenciales admin sin crear sesión.
type AdminValidateCredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminChangePasswordRequest cambio de contraseña del administrador.
type AdminChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// AdminValidateSessionRequest validación de un token de sesión admin.
type AdminValidateSessionRequest struct {
	Token string `json:"token" validate:"required"`
}

// PasswordValidationResult resultado de aplicar la política de contraseñas.
type PasswordValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// AdminLoginResponse sesión admin creada.
type AdminLoginResponse struct {
	User          UserResponse `json:"user"`
	Token         string       `json:"token"`
	Message       string       `json:"message"`
	SessionExpiry time.Time    `json:"session_expiry"`
}

// AdminValidateCredentialsResponse detalle de la verificación de credenciales.
type AdminValidateCredentialsResponse struct {
	IsValidEmail         bool                     `json:"is_valid_email"`
	IsValidPassword      bool                     `json:"is_valid_password"`
	PasswordValidation   PasswordValidationResult `json:"password_validation"`
	CredentialValidation PasswordValidationResult `json:"credential_validation"`
	IsAdmin              bool                     `json:"is_admin"`
}

// PasswordRequirementsResponse política de contraseñas admin.
type PasswordRequirementsResponse struct {
	MinLength          int    `json:"min_length"`
	RequireUppercase   bool   `json:"require_uppercase"`
	RequireLowercase   bool   `json:"require_lowercase"`
	RequireNumber      bool   `json:"require_number"`
	RequireSpecialChar bool   `json:"require_special_char"`
	SpecialChars       string `json:"special_chars"`
}

// AdminConfigResponse configuración admin expuesta al frontend (sin contraseña).
type AdminConfigResponse struct {
	Email                string                       `json:"email"`
	PasswordRequirements PasswordRequirementsResponse `json:"password_requirements"`
	SubscriptionTier     string                       `json:"subscription_tier"`
	SessionTimeoutMs     int64                        `json:"session_timeout"`
}

// AdminChangePasswordResponse resultado del cambio de contraseña.
type AdminChangePasswordResponse struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
	RequiresReauth bool      `json:"requires_reauth"`
}

// AdminSessionResponse resultado de validar un token admin.
type AdminSessionResponse struct {
	IsValid       bool      `json:"is_valid"`
	UserType      string    `json:"user_type"`
	SessionExpiry time.Time `json:"session_expiry"`
}

// TestUserResponse credenciales y estado de la cuenta de prueba.
type TestUserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"` // cuenta de demostración; se expone a propósito
	Tier     string `json:"tier"`
	Exists   bool   `json:"exists"`
}

// SystemStatsResponse métricas simuladas del sistema para el dashboard admin.
type SystemStatsResponse struct {
	TotalUsers          int            `json:"total_users"`
	ActiveUsers         int            `json:"active_users"`
	TotalQuotes         int            `json:"total_quotes"`
	TotalJobs           int            `json:"total_jobs"`
	SystemHealth        float64        `json:"system_health"`
	ServerUptime        string         `json:"server_uptime"`
	DatabaseSize        string         `json:"database_size"`
	LastBackup          time.Time      `json:"last_backup"`
	ActiveSubscriptions map[string]int `json:"active_subscriptions"`
	RevenueMetrics      RevenueMetrics `json:"revenue_metrics"`
}

// RevenueMetrics métricas de ingresos simuladas.
type RevenueMetrics struct {
	MonthlyRecurring float64 `json:"monthly_recurring"`
	TotalRevenue     float64 `json:"total_revenue"`
	ConversionRate   float64 `json:"conversion_rate"`
}
