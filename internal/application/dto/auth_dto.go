package dto

import "time"

// RegisterRequest registro de cuenta nueva.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	CompanyName string `json:"company_name" validate:"required"`
}

// LoginRequest inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// VerifyEmailRequest confirmación de email.
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// ResetPasswordRequest solicitud de restablecimiento de contraseña.
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// BusinessProfileResponse perfil de negocio en respuestas.
type BusinessProfileResponse struct {
	CompanyName string `json:"company_name,omitempty"`
	OwnerName   string `json:"owner_name,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

// UpdateBusinessProfileRequest actualización parcial del perfil de negocio.
type UpdateBusinessProfileRequest struct {
	CompanyName *string `json:"company_name,omitempty"`
	OwnerName   *string `json:"owner_name,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	TaxID       *string `json:"tax_id,omitempty"`
	Logo        *string `json:"logo,omitempty"`
}

// UserResponse usuario en respuestas.
type UserResponse struct {
	ID                  string                  `json:"id"`
	Email               string                  `json:"email"`
	EmailVerified       bool                    `json:"email_verified"`
	UserType            string                  `json:"user_type"`
	SubscriptionTier    string                  `json:"subscription_tier"`
	SubscriptionStatus  string                  `json:"subscription_status"`
	SubscriptionExpiry  *time.Time              `json:"subscription_expiry,omitempty"`
	BusinessProfile     BusinessProfileResponse `json:"business_profile"`
	CreatedAt           time.Time               `json:"created_at"`
	LastLogin           *time.Time              `json:"last_login,omitempty"`
	OnboardingCompleted bool                    `json:"onboarding_completed"`
}

// LoginResponse token de sesión + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SubscriptionUsageResponse cuotas del plan y uso actual por recurso.
type SubscriptionUsageResponse struct {
	Tier           string `json:"tier"`
	CustomerCount  int    `json:"customer_count"`
	CustomerLimit  int    `json:"customer_limit"` // -1 = ilimitado
	QuoteCount     int    `json:"quote_count"`
	QuoteLimit     int    `json:"quote_limit"`
	JobCount       int    `json:"job_count"`
	JobLimit       int    `json:"job_limit"`
	CanAddCustomer bool   `json:"can_add_customer"`
	CanAddQuote    bool   `json:"can_add_quote"`
	CanAddJob      bool   `json:"can_add_job"`
}
