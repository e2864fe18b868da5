package entity

import "time"

// SubscriptionTier plan de suscripción del usuario.
type SubscriptionTier string

const (
	TierFree       SubscriptionTier = "free"
	TierBasic      SubscriptionTier = "basic"
	TierPro        SubscriptionTier = "pro"
	TierEnterprise SubscriptionTier = "enterprise"
)

// UserType tipo de cuenta.
const (
	UserTypeStandard = "user"
	UserTypeAdmin    = "admin"
)

// Unlimited marca un límite sin tope en TierLimits.
const Unlimited = -1

// TestUserID cuenta de demostración; al iniciar sesión carga datos de ejemplo
// en lugar de snapshots persistidos.
const TestUserID = "test_user_001"

// TierLimits cuotas y features de un plan.
type TierLimits struct {
	Customers int
	Quotes    int
	Jobs      int
	Features  []string
}

// WithinLimit indica si el límite admite un recurso adicional dado el conteo actual.
func WithinLimit(count, limit int) bool {
	return limit == Unlimited || count < limit
}

// SubscriptionLimits cuotas por plan.
var SubscriptionLimits = map[SubscriptionTier]TierLimits{
	TierFree: {
		Customers: 1, Quotes: 1, Jobs: 1,
		Features: []string{"basic_profile", "basic_quotes", "basic_jobs"},
	},
	TierBasic: {
		Customers: 25, Quotes: 50, Jobs: 50,
		Features: []string{"basic_profile", "basic_quotes", "basic_jobs", "email_notifications", "basic_reports"},
	},
	TierPro: {
		Customers: Unlimited, Quotes: Unlimited, Jobs: Unlimited,
		Features: []string{"all_features", "advanced_reports", "sms_notifications", "custom_branding", "api_access"},
	},
	TierEnterprise: {
		Customers: Unlimited, Quotes: Unlimited, Jobs: Unlimited,
		Features: []string{"all_features", "priority_support", "custom_integrations", "white_label"},
	},
}

// BusinessProfile datos del negocio del usuario.
type BusinessProfile struct {
	CompanyName string `json:"company_name,omitempty"`
	OwnerName   string `json:"owner_name,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

// User cuenta de la aplicación con plan de suscripción.
type User struct {
	ID                  string           `json:"id"`
	Email               string           `json:"email"`
	EmailVerified       bool             `json:"email_verified"`
	UserType            string           `json:"user_type"`
	Tier                SubscriptionTier `json:"subscription_tier"`
	SubscriptionStatus  string           `json:"subscription_status"` // active, canceled, expired, trial
	SubscriptionExpiry  *time.Time       `json:"subscription_expiry,omitempty"`
	BusinessProfile     BusinessProfile  `json:"business_profile"`
	CreatedAt           time.Time        `json:"created_at"`
	LastLogin           *time.Time       `json:"last_login,omitempty"`
	OnboardingCompleted bool             `json:"onboarding_completed"`
}

// Limits devuelve las cuotas del plan del usuario.
func (u *User) Limits() TierLimits {
	return SubscriptionLimits[u.Tier]
}

// HasFeature indica si el plan incluye la feature (all_features cubre todo).
func (u *User) HasFeature(feature string) bool {
	for _, f := range u.Limits().Features {
		if f == "all_features" || f == feature {
			return true
		}
	}
	return false
}
