package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
	"github.com/simplepro/simplepro-api/pkg/jwt"
	"github.com/simplepro/simplepro-api/pkg/logger"
)

// Política de contraseñas del administrador.
const (
	adminPasswordMinLength = 6
	adminSpecialChars      = "!@#$%^&*"
)

// AdminUseCase procedimientos administrativos simulados: sesión admin,
// política de contraseñas, cuenta de prueba y métricas del sistema.
type AdminUseCase struct {
	email          string
	sessionMinutes int
	jwtSecret      string
	jwtIssuer      string
	log            *logger.Logger

	mu           sync.RWMutex
	passwordHash []byte
	testUser     *entity.User
}

// NewAdminUseCase construye el caso de uso con las credenciales configuradas.
func NewAdminUseCase(email, password string, sessionMinutes int, jwtSecret, jwtIssuer string, log *logger.Logger) *AdminUseCase {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de la contraseña admin")
	}
	return &AdminUseCase{
		email:          strings.ToLower(email),
		sessionMinutes: sessionMinutes,
		jwtSecret:      jwtSecret,
		jwtIssuer:      jwtIssuer,
		log:            log,
		passwordHash:   hash,
	}
}

// ValidatePasswordPolicy aplica la política: longitud mínima, mayúscula,
// minúscula, dígito y carácter especial. Devuelve todos los errores juntos.
func ValidatePasswordPolicy(password string) dto.PasswordValidationResult {
	var errs []string
	if len(password) < adminPasswordMinLength {
		errs = append(errs, "La contraseña debe tener al menos 6 caracteres")
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(adminSpecialChars, r):
			hasSpecial = true
		}
	}
	if !hasUpper {
		errs = append(errs, "La contraseña debe incluir al menos una mayúscula")
	}
	if !hasLower {
		errs = append(errs, "La contraseña debe incluir al menos una minúscula")
	}
	if !hasDigit {
		errs = append(errs, "La contraseña debe incluir al menos un número")
	}
	if !hasSpecial {
		errs = append(errs, "La contraseña debe incluir al menos un carácter especial ("+adminSpecialChars+")")
	}
	return dto.PasswordValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// Login crea una sesión admin si las credenciales coinciden.
func (uc *AdminUseCase) Login(ctx context.Context, email, password string) (*dto.AdminLoginResponse, error) {
	uc.mu.RLock()
	hash := uc.passwordHash
	uc.mu.RUnlock()
	if strings.ToLower(email) != uc.email {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtSecret, "admin_001", string(entity.TierEnterprise), entity.UserTypeAdmin, uc.jwtIssuer, uc.sessionMinutes)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	uc.log.Info().Str("email", uc.email).Msg("sesión admin iniciada")
	return &dto.AdminLoginResponse{
		User: dto.UserResponse{
			ID:               "admin_001",
			Email:            uc.email,
			EmailVerified:    true,
			UserType:         entity.UserTypeAdmin,
			SubscriptionTier: string(entity.TierEnterprise),
			CreatedAt:        now,
		},
		Token:         token,
		Message:       "Inicio de sesión de administrador exitoso",
		SessionExpiry: now.Add(time.Duration(uc.sessionMinutes) * time.Minute),
	}, nil
}

// ValidateCredentials verifica credenciales admin sin crear sesión; devuelve
// el detalle de cada comprobación.
func (uc *AdminUseCase) ValidateCredentials(ctx context.Context, email, password string) *dto.AdminValidateCredentialsResponse {
	uc.mu.RLock()
	hash := uc.passwordHash
	uc.mu.RUnlock()

	validEmail := strings.ToLower(email) == uc.email
	validPassword := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
	policy := ValidatePasswordPolicy(password)

	cred := dto.PasswordValidationResult{IsValid: validEmail && validPassword}
	if !validEmail {
		cred.Errors = append(cred.Errors, "Email de administrador no reconocido")
	}
	if !validPassword {
		cred.Errors = append(cred.Errors, "Contraseña incorrecta")
	}
	return &dto.AdminValidateCredentialsResponse{
		IsValidEmail:         validEmail,
		IsValidPassword:      validPassword,
		PasswordValidation:   policy,
		CredentialValidation: cred,
		IsAdmin:              validEmail && validPassword,
	}
}

// Config devuelve la configuración admin visible, sin la contraseña.
func (uc *AdminUseCase) Config() *dto.AdminConfigResponse {
	return &dto.AdminConfigResponse{
		Email: uc.email,
		PasswordRequirements: dto.PasswordRequirementsResponse{
			MinLength:          adminPasswordMinLength,
			RequireUppercase:   true,
			RequireLowercase:   true,
			RequireNumber:      true,
			RequireSpecialChar: true,
			SpecialChars:       adminSpecialChars,
		},
		SubscriptionTier: string(entity.TierEnterprise),
		SessionTimeoutMs: int64(uc.sessionMinutes) * 60 * 1000,
	}
}

// ChangePassword cambia la contraseña admin: exige la actual, que la nueva
// cumpla la política y que la confirmación coincida.
func (uc *AdminUseCase) ChangePassword(ctx context.Context, in dto.AdminChangePasswordRequest) (*dto.AdminChangePasswordResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(in.CurrentPassword)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if in.NewPassword != in.ConfirmPassword {
		return nil, domain.ErrInvalidInput
	}
	if policy := ValidatePasswordPolicy(in.NewPassword); !policy.IsValid {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	uc.passwordHash = hash
	uc.log.Info().Msg("contraseña admin actualizada")
	return &dto.AdminChangePasswordResponse{
		Success:        true,
		Message:        "Contraseña actualizada correctamente",
		Timestamp:      time.Now(),
		RequiresReauth: true,
	}, nil
}

// ValidateSession comprueba un token de sesión admin.
func (uc *AdminUseCase) ValidateSession(ctx context.Context, token string) *dto.AdminSessionResponse {
	_, _, userType, err := jwt.Parse(uc.jwtSecret, token)
	if err != nil || userType != entity.UserTypeAdmin {
		return &dto.AdminSessionResponse{IsValid: false}
	}
	expiry, err := jwt.ExpiresAt(uc.jwtSecret, token)
	if err != nil {
		return &dto.AdminSessionResponse{IsValid: false}
	}
	return &dto.AdminSessionResponse{
		IsValid:       true,
		UserType:      entity.UserTypeAdmin,
		SessionExpiry: expiry,
	}
}

// CreateTestUser registra la cuenta de prueba y devuelve sus credenciales.
// Idempotente: si ya existe, devuelve la existente con Exists en true.
func (uc *AdminUseCase) CreateTestUser(ctx context.Context) *dto.TestUserResponse {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	exists := uc.testUser != nil
	if !exists {
		uc.testUser = &entity.User{
			ID:                  entity.TestUserID,
			Email:               TestUserEmail,
			EmailVerified:       true,
			UserType:            entity.UserTypeStandard,
			Tier:                entity.TierPro,
			SubscriptionStatus:  "active",
			CreatedAt:           time.Now(),
			OnboardingCompleted: true,
		}
	}
	return &dto.TestUserResponse{
		ID:       entity.TestUserID,
		Email:    TestUserEmail,
		Password: TestUserPassword,
		Tier:     string(entity.TierPro),
		Exists:   exists,
	}
}

// TestUser devuelve la cuenta de prueba, o ErrUserNotFound si no se creó.
func (uc *AdminUseCase) TestUser(ctx context.Context) (*dto.TestUserResponse, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.testUser == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.TestUserResponse{
		ID:       uc.testUser.ID,
		Email:    uc.testUser.Email,
		Password: TestUserPassword,
		Tier:     string(uc.testUser.Tier),
		Exists:   true,
	}, nil
}

// DeleteTestUser elimina la cuenta de prueba. No-op si no existe.
func (uc *AdminUseCase) DeleteTestUser(ctx context.Context) {
	uc.mu.Lock()
	uc.testUser = nil
	uc.mu.Unlock()
}

// SystemStats devuelve las métricas simuladas del dashboard admin. Los
// valores son fijos: no hay telemetría real detrás.
func (uc *AdminUseCase) SystemStats(ctx context.Context) *dto.SystemStatsResponse {
	return &dto.SystemStatsResponse{
		TotalUsers:   1234,
		ActiveUsers:  567,
		TotalQuotes:  8901,
		TotalJobs:    2345,
		SystemHealth: 99.9,
		ServerUptime: "15 days, 4 hours",
		DatabaseSize: "2.3 GB",
		LastBackup:   time.Now().Add(-6 * time.Hour),
		ActiveSubscriptions: map[string]int{
			string(entity.TierFree):       800,
			string(entity.TierBasic):      300,
			string(entity.TierPro):        120,
			string(entity.TierEnterprise): 14,
		},
		RevenueMetrics: dto.RevenueMetrics{
			MonthlyRecurring: 15420,
			TotalRevenue:     89750,
			ConversionRate:   12.5,
		},
	}
}
