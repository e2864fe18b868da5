package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplepro/simplepro-api/internal/application/auth"
	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/pkg/logger"
)

const (
	adminEmail    = "admin@simplepro.com"
	adminPassword = "Admin007!"
	testSecret    = "test-secret-key-for-unit-tests"
	testIssuer    = "simplepro-test"
)

func newAdminUC(t *testing.T) *auth.AdminUseCase {
	t.Helper()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return auth.NewAdminUseCase(adminEmail, adminPassword, 24*60, testSecret, testIssuer, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests política de contraseñas
// ──────────────────────────────────────────────────────────────────────────────

func TestValidatePasswordPolicy_ContrasenaValida(t *testing.T) {
	res := auth.ValidatePasswordPolicy("Admin007!")
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

// La política acumula todos los errores, no solo el primero.
func TestValidatePasswordPolicy_AcumulaErrores(t *testing.T) {
	res := auth.ValidatePasswordPolicy("abc")
	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors, 4, "faltan longitud, mayúscula, número y especial")
}

func TestValidatePasswordPolicy_CasosIndividuales(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"sin mayúscula", "abcdef1!", false},
		{"sin minúscula", "ABCDEF1!", false},
		{"sin número", "Abcdefg!", false},
		{"sin especial", "Abcdef12", false},
		{"especial fuera del set", "Abcdef1?", false},
		{"mínima válida", "Abc12!", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := auth.ValidatePasswordPolicy(tc.password)
			assert.Equal(t, tc.valid, res.IsValid)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests sesión admin
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminLogin_CredencialesCorrectas(t *testing.T) {
	uc := newAdminUC(t)
	out, err := uc.Login(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "admin", out.User.UserType)
	assert.Equal(t, "enterprise", out.User.SubscriptionTier)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), out.SessionExpiry, time.Minute,
		"la sesión admin dura 24 horas")

	// El token emitido debe validar como sesión admin vigente.
	session := uc.ValidateSession(context.Background(), out.Token)
	assert.True(t, session.IsValid)
	assert.Equal(t, "admin", session.UserType)
}

func TestAdminLogin_CredencialesIncorrectas(t *testing.T) {
	uc := newAdminUC(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, "otro@simplepro.com", adminPassword)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, adminEmail, "mala")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateSession_TokenBasura(t *testing.T) {
	uc := newAdminUC(t)
	out := uc.ValidateSession(context.Background(), "no-es-un-jwt")
	assert.False(t, out.IsValid)
}

func TestValidateCredentials_Detalle(t *testing.T) {
	uc := newAdminUC(t)
	ctx := context.Background()

	out := uc.ValidateCredentials(ctx, adminEmail, adminPassword)
	assert.True(t, out.IsAdmin)
	assert.True(t, out.IsValidEmail)
	assert.True(t, out.IsValidPassword)

	out = uc.ValidateCredentials(ctx, adminEmail, "mala")
	assert.False(t, out.IsAdmin)
	assert.True(t, out.IsValidEmail)
	assert.False(t, out.IsValidPassword)
	assert.NotEmpty(t, out.CredentialValidation.Errors)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests cambio de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword_FlujoCompleto(t *testing.T) {
	uc := newAdminUC(t)
	ctx := context.Background()

	out, err := uc.ChangePassword(ctx, dto.AdminChangePasswordRequest{
		CurrentPassword: adminPassword,
		NewPassword:     "Nueva123!",
		ConfirmPassword: "Nueva123!",
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.True(t, out.RequiresReauth)

	// La contraseña anterior deja de valer; la nueva funciona.
	_, err = uc.Login(ctx, adminEmail, adminPassword)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, adminEmail, "Nueva123!")
	assert.NoError(t, err)
}

func TestChangePassword_Rechazos(t *testing.T) {
	uc := newAdminUC(t)
	ctx := context.Background()

	_, err := uc.ChangePassword(ctx, dto.AdminChangePasswordRequest{
		CurrentPassword: "mala", NewPassword: "Nueva123!", ConfirmPassword: "Nueva123!",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "exige la contraseña actual")

	_, err = uc.ChangePassword(ctx, dto.AdminChangePasswordRequest{
		CurrentPassword: adminPassword, NewPassword: "Nueva123!", ConfirmPassword: "Otra123!",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la confirmación debe coincidir")

	_, err = uc.ChangePassword(ctx, dto.AdminChangePasswordRequest{
		CurrentPassword: adminPassword, NewPassword: "debil", ConfirmPassword: "debil",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la nueva contraseña debe cumplir la política")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests cuenta de prueba y métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestTestUser_CicloDeVida(t *testing.T) {
	uc := newAdminUC(t)
	ctx := context.Background()

	_, err := uc.TestUser(ctx)
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "antes de crearla no existe")

	created := uc.CreateTestUser(ctx)
	assert.False(t, created.Exists, "primera creación")
	assert.Equal(t, "test_user_001", created.ID)
	assert.Equal(t, auth.TestUserEmail, created.Email)

	again := uc.CreateTestUser(ctx)
	assert.True(t, again.Exists, "la creación es idempotente")

	out, err := uc.TestUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pro", out.Tier)

	uc.DeleteTestUser(ctx)
	_, err = uc.TestUser(ctx)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Las métricas del dashboard son fijas: no hay telemetría real detrás.
func TestSystemStats_ValoresSimulados(t *testing.T) {
	uc := newAdminUC(t)
	out := uc.SystemStats(context.Background())

	assert.Equal(t, 1234, out.TotalUsers)
	assert.Equal(t, 567, out.ActiveUsers)
	assert.Equal(t, 8901, out.TotalQuotes)
	assert.Equal(t, 2345, out.TotalJobs)
	assert.InDelta(t, 99.9, out.SystemHealth, 0.001)
	assert.Equal(t, "2.3 GB", out.DatabaseSize)
	assert.Equal(t, 800, out.ActiveSubscriptions["free"])
	assert.Equal(t, 14, out.ActiveSubscriptions["enterprise"])
	assert.InDelta(t, 12.5, out.RevenueMetrics.ConversionRate, 0.001)
}

func TestAdminConfig_NoExponeContrasena(t *testing.T) {
	uc := newAdminUC(t)
	out := uc.Config()

	assert.Equal(t, adminEmail, out.Email)
	assert.Equal(t, 6, out.PasswordRequirements.MinLength)
	assert.Equal(t, "!@#$%^&*", out.PasswordRequirements.SpecialChars)
	assert.Equal(t, int64(24*60*60*1000), out.SessionTimeoutMs)
}
