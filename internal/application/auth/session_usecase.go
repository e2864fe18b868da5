// Package auth gestiona las sesiones de usuario, la cuenta de demostración y
// los procedimientos administrativos simulados.
package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
	"github.com/simplepro/simplepro-api/pkg/jwt"
	"github.com/simplepro/simplepro-api/pkg/logger"
)

// Credenciales de la cuenta de demostración.
const (
	TestUserEmail    = "test@simplepro.com"
	TestUserPassword = "Test123!"
)

// Initializer es un store por usuario que se carga al iniciar sesión y se
// vacía al cerrarla.
type Initializer interface {
	InitializeForUser(ctx context.Context, userID string) error
	Reset(ctx context.Context) error
}

type userRecord struct {
	user         *entity.User
	passwordHash []byte
}

// SessionUseCase autenticación simulada: registro en memoria de cuentas con
// hash bcrypt, emisión de JWT y coordinación de los stores por usuario.
type SessionUseCase struct {
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
	log        *logger.Logger

	mu      sync.RWMutex
	users   map[string]*userRecord // clave: email en minúsculas
	current *entity.User
	stores  []Initializer
}

// NewSessionUseCase construye el caso de uso y registra la cuenta de prueba.
func NewSessionUseCase(jwtSecret, jwtIssuer string, expMinutes int, log *logger.Logger) *SessionUseCase {
	uc := &SessionUseCase{
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		expMinutes: expMinutes,
		log:        log,
		users:      make(map[string]*userRecord),
	}
	uc.seedTestUser()
	return uc
}

// RegisterStore añade un store que se inicializa con cada login y se vacía
// con cada logout. Se llama una vez por store durante el arranque.
func (uc *SessionUseCase) RegisterStore(s Initializer) {
	uc.stores = append(uc.stores, s)
}

// CurrentUser devuelve una copia del usuario en sesión, o nil si no hay sesión.
func (uc *SessionUseCase) CurrentUser() *entity.User {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.current == nil {
		return nil
	}
	u := *uc.current
	return &u
}

// Register crea una cuenta nueva en el plan free, pendiente de verificación.
func (uc *SessionUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*entity.User, error) {
	email := strings.ToLower(in.Email)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, exists := uc.users[email]; exists {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:                 uuid.New().String(),
		Email:              email,
		UserType:           entity.UserTypeStandard,
		Tier:               entity.TierFree,
		SubscriptionStatus: "trial",
		BusinessProfile:    entity.BusinessProfile{CompanyName: in.CompanyName},
		CreatedAt:          time.Now(),
	}
	uc.users[email] = &userRecord{user: user, passwordHash: hash}
	uc.log.Info().Str("email", email).Msg("cuenta registrada")
	out := *user
	return &out, nil
}

// Login valida credenciales, emite un JWT e inicializa los stores por
// usuario. La cuenta de prueba carga datos de ejemplo.
func (uc *SessionUseCase) Login(ctx context.Context, in dto.LoginRequest) (string, *entity.User, error) {
	email := strings.ToLower(in.Email)
	uc.mu.Lock()
	record, ok := uc.users[email]
	if !ok {
		uc.mu.Unlock()
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(record.passwordHash, []byte(in.Password)); err != nil {
		uc.mu.Unlock()
		return "", nil, domain.ErrUnauthorized
	}
	now := time.Now()
	record.user.LastLogin = &now
	current := *record.user
	uc.current = &current
	uc.mu.Unlock()

	token, err := jwt.Generate(uc.jwtSecret, current.ID, string(current.Tier), current.UserType, uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return "", nil, err
	}
	for _, s := range uc.stores {
		if err := s.InitializeForUser(ctx, current.ID); err != nil {
			uc.log.Error().Err(err).Str("user_id", current.ID).Msg("inicializar store de usuario")
			return "", nil, err
		}
	}
	uc.log.Info().Str("user_id", current.ID).Msg("sesión iniciada")
	out := current
	return token, &out, nil
}

// Logout vacía los stores por usuario y cierra la sesión. Los snapshots
// persistidos se conservan para el siguiente login.
func (uc *SessionUseCase) Logout(ctx context.Context) error {
	for _, s := range uc.stores {
		if err := s.Reset(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("vaciar store en logout")
		}
	}
	uc.mu.Lock()
	uc.current = nil
	uc.mu.Unlock()
	return nil
}

// VerifyEmail marca el email del usuario en sesión como verificado. El token
// no se comprueba contra nada: el envío de correo es simulado.
func (uc *SessionUseCase) VerifyEmail(ctx context.Context, token string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.current == nil {
		return domain.ErrUnauthorized
	}
	uc.current.EmailVerified = true
	if record, ok := uc.users[uc.current.Email]; ok {
		record.user.EmailVerified = true
	}
	return nil
}

// ResetPassword simula el envío del correo de restablecimiento. Responde
// igual exista o no la cuenta para no filtrar emails registrados.
func (uc *SessionUseCase) ResetPassword(ctx context.Context, email string) error {
	uc.mu.RLock()
	_, ok := uc.users[strings.ToLower(email)]
	uc.mu.RUnlock()
	if ok {
		uc.log.Info().Str("email", email).Msg("restablecimiento de contraseña solicitado")
	}
	return nil
}

// RefreshToken emite un JWT nuevo para la sesión actual.
func (uc *SessionUseCase) RefreshToken(ctx context.Context) (string, error) {
	user := uc.CurrentUser()
	if user == nil {
		return "", domain.ErrUnauthorized
	}
	return jwt.Generate(uc.jwtSecret, user.ID, string(user.Tier), user.UserType, uc.jwtIssuer, uc.expMinutes)
}

// UpdateBusinessProfile aplica una actualización parcial al perfil de negocio
// del usuario en sesión.
func (uc *SessionUseCase) UpdateBusinessProfile(ctx context.Context, in dto.UpdateBusinessProfileRequest) (*entity.User, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.current == nil {
		return nil, domain.ErrUnauthorized
	}
	p := &uc.current.BusinessProfile
	if in.CompanyName != nil {
		p.CompanyName = *in.CompanyName
	}
	if in.OwnerName != nil {
		p.OwnerName = *in.OwnerName
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.TaxID != nil {
		p.TaxID = *in.TaxID
	}
	if in.Logo != nil {
		p.Logo = *in.Logo
	}
	if record, ok := uc.users[uc.current.Email]; ok {
		record.user.BusinessProfile = *p
	}
	out := *uc.current
	return &out, nil
}

// SetBusinessProfile reemplaza el perfil de negocio del usuario en sesión.
// Lo usa la carga de snapshots al iniciar sesión.
func (uc *SessionUseCase) SetBusinessProfile(p entity.BusinessProfile) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.current == nil {
		return
	}
	uc.current.BusinessProfile = p
	if record, ok := uc.users[uc.current.Email]; ok {
		record.user.BusinessProfile = p
	}
}

// UpgradeTier cambia el plan del usuario en sesión (pago simulado).
func (uc *SessionUseCase) UpgradeTier(ctx context.Context, tier entity.SubscriptionTier) (*entity.User, error) {
	if _, ok := entity.SubscriptionLimits[tier]; !ok {
		return nil, domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.current == nil {
		return nil, domain.ErrUnauthorized
	}
	uc.current.Tier = tier
	uc.current.SubscriptionStatus = "active"
	if record, ok := uc.users[uc.current.Email]; ok {
		record.user.Tier = tier
		record.user.SubscriptionStatus = "active"
	}
	out := *uc.current
	return &out, nil
}

// seedTestUser registra la cuenta de demostración test_user_001.
func (uc *SessionUseCase) seedTestUser() {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestUserPassword), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Fatal().Err(err).Msg("hash de la cuenta de prueba")
	}
	uc.users[TestUserEmail] = &userRecord{
		user: &entity.User{
			ID:                  entity.TestUserID,
			Email:               TestUserEmail,
			EmailVerified:       true,
			UserType:            entity.UserTypeStandard,
			Tier:                entity.TierPro,
			SubscriptionStatus:  "active",
			BusinessProfile:     entity.BusinessProfile{CompanyName: "Test Construction Co."},
			CreatedAt:           time.Now(),
			OnboardingCompleted: true,
		},
		passwordHash: hash,
	}
}
