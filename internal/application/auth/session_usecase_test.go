package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplepro/simplepro-api/internal/application/auth"
	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
	"github.com/simplepro/simplepro-api/pkg/logger"
)

func newSessionUC(t *testing.T) *auth.SessionUseCase {
	t.Helper()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return auth.NewSessionUseCase(testSecret, testIssuer, 60, log)
}

// trackingStore registra las llamadas de inicialización y vaciado.
type trackingStore struct {
	initializedFor string
	resets         int
}

func (s *trackingStore) InitializeForUser(ctx context.Context, userID string) error {
	s.initializedFor = userID
	return nil
}

func (s *trackingStore) Reset(ctx context.Context) error {
	s.resets++
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests registro y login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CuentaNuevaEnPlanFree(t *testing.T) {
	uc := newSessionUC(t)
	ctx := context.Background()

	user, err := uc.Register(ctx, dto.RegisterRequest{
		Email: "Nueva@Empresa.com", Password: "secreta1", CompanyName: "Empresa SAS",
	})
	require.NoError(t, err)
	assert.Equal(t, "nueva@empresa.com", user.Email, "el email se normaliza a minúsculas")
	assert.Equal(t, entity.TierFree, user.Tier)
	assert.False(t, user.EmailVerified)
	assert.Equal(t, "Empresa SAS", user.BusinessProfile.CompanyName)

	_, err = uc.Register(ctx, dto.RegisterRequest{
		Email: "nueva@empresa.com", Password: "otra1234", CompanyName: "Otra",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_InicializaStoresYFijaSesion(t *testing.T) {
	uc := newSessionUC(t)
	store := &trackingStore{}
	uc.RegisterStore(store)
	ctx := context.Background()

	assert.Nil(t, uc.CurrentUser(), "sin login no hay sesión")

	token, user, err := uc.Login(ctx, dto.LoginRequest{
		Email: auth.TestUserEmail, Password: auth.TestUserPassword,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, entity.TestUserID, user.ID)
	assert.Equal(t, entity.TestUserID, store.initializedFor, "el login inicializa los stores registrados")

	current := uc.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, entity.TestUserID, current.ID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newSessionUC(t)
	ctx := context.Background()

	_, _, err := uc.Login(ctx, dto.LoginRequest{Email: auth.TestUserEmail, Password: "mala12"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@simplepro.com", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, uc.CurrentUser())
}

func TestLogout_VaciaStoresYCierraSesion(t *testing.T) {
	uc := newSessionUC(t)
	store := &trackingStore{}
	uc.RegisterStore(store)
	ctx := context.Background()

	_, _, err := uc.Login(ctx, dto.LoginRequest{Email: auth.TestUserEmail, Password: auth.TestUserPassword})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx))
	assert.Equal(t, 1, store.resets, "el logout vacía los stores registrados")
	assert.Nil(t, uc.CurrentUser())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests suscripción y perfil
// ──────────────────────────────────────────────────────────────────────────────

func TestUpgradeTier(t *testing.T) {
	uc := newSessionUC(t)
	ctx := context.Background()

	_, err := uc.UpgradeTier(ctx, entity.TierBasic)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "sin sesión no hay upgrade")

	reg, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "secreta1", CompanyName: "X"})
	require.NoError(t, err)
	_, _, err = uc.Login(ctx, dto.LoginRequest{Email: reg.Email, Password: "secreta1"})
	require.NoError(t, err)

	user, err := uc.UpgradeTier(ctx, entity.TierBasic)
	require.NoError(t, err)
	assert.Equal(t, entity.TierBasic, user.Tier)
	assert.Equal(t, "active", user.SubscriptionStatus)

	_, err = uc.UpgradeTier(ctx, "platino")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateBusinessProfile_Parcial(t *testing.T) {
	uc := newSessionUC(t)
	ctx := context.Background()
	_, _, err := uc.Login(ctx, dto.LoginRequest{Email: auth.TestUserEmail, Password: auth.TestUserPassword})
	require.NoError(t, err)

	owner := "Pat Jiménez"
	user, err := uc.UpdateBusinessProfile(ctx, dto.UpdateBusinessProfileRequest{OwnerName: &owner})
	require.NoError(t, err)
	assert.Equal(t, "Pat Jiménez", user.BusinessProfile.OwnerName)
	assert.Equal(t, "Test Construction Co.", user.BusinessProfile.CompanyName, "los campos ausentes no se tocan")
}
