package crm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplepro/simplepro-api/internal/application/crm"
	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
	"github.com/simplepro/simplepro-api/internal/domain/repository"
	"github.com/simplepro/simplepro-api/internal/infrastructure/memory"
	"github.com/simplepro/simplepro-api/internal/infrastructure/redisstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests AddCampaign / RemoveCampaign
// ──────────────────────────────────────────────────────────────────────────────

func TestAddCampaign_ProgramaConSieteDiasDeAntelacion(t *testing.T) {
	svc := newTestService(userWithTier(entity.TierPro))
	c := mustAdd(t, svc, "Ana")

	before := time.Now()
	camp, err := svc.AddCampaign(context.Background(), c.ID, entity.CampaignSeasonal)
	require.NoError(t, err)

	assert.Equal(t, entity.CampaignScheduled, camp.Status)
	assert.Equal(t, entity.CampaignSeasonal, camp.Type)
	expected := before.AddDate(0, 0, 7)
	assert.WithinDuration(t, expected, camp.ScheduledDate, time.Minute, "la campaña se programa a 7 días")

	out, err := svc.GetByID(c.ID)
	require.NoError(t, err)
	require.NotNil(t, out.LastContactDate, "programar una campaña registra el contacto")
	assert.WithinDuration(t, before, *out.LastContactDate, time.Minute)
}

// Idempotencia por tipo: una segunda campaña activa del mismo tipo no se crea.
func TestAddCampaign_IdempotentePorTipoActivo(t *testing.T) {
	svc := newTestService(userWithTier(entity.TierPro))
	c := mustAdd(t, svc, "Ana")
	ctx := context.Background()

	first, err := svc.AddCampaign(ctx, c.ID, entity.CampaignReminder)
	require.NoError(t, err)
	second, err := svc.AddCampaign(ctx, c.ID, entity.CampaignReminder)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "se devuelve la campaña existente, no una nueva")

	out, err := svc.GetByID(c.ID)
	require.NoError(t, err)
	assert.Len(t, out.Campaigns, 1)

	// De otro tipo sí se admite una segunda campaña.
	_, err = svc.AddCampaign(ctx, c.ID, entity.CampaignSeasonal)
	require.NoError(t, err)
	out, err = svc.GetByID(c.ID)
	require.NoError(t, err)
	assert.Len(t, out.Campaigns, 2)
}

func TestAddCampaign_ClienteOTipoInvalido(t *testing.T) {
	svc := newTestService(userWithTier(entity.TierPro))
	ctx := context.Background()

	_, err := svc.AddCampaign(ctx, "no-existe", entity.CampaignReminder)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	c := mustAdd(t, svc, "Ana")
	_, err = svc.AddCampaign(ctx, c.ID, "spam")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveCampaign_NoOpSiNoExiste(t *testing.T) {
	svc := newTestService(userWithTier(entity.TierPro))
	c := mustAdd(t, svc, "Ana")
	ctx := context.Background()

	camp, err := svc.AddCampaign(ctx, c.ID, entity.CampaignWinBack)
	require.NoError(t, err)

	assert.NoError(t, svc.RemoveCampaign(ctx, c.ID, "campaña-fantasma"), "quitar una campaña inexistente es no-op")
	assert.ErrorIs(t, svc.RemoveCampaign(ctx, "no-existe", camp.ID), domain.ErrNotFound)

	require.NoError(t, svc.RemoveCampaign(ctx, c.ID, camp.ID))
	out, err := svc.GetByID(c.ID)
	require.NoError(t, err)
	assert.Empty(t, out.Campaigns)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests inscripción masiva
// ──────────────────────────────────────────────────────────────────────────────

func TestAddCustomersToCampaign_MismoIDYOmiteExistentes(t *testing.T) {
	svc := newTestService(userWithTier(entity.TierPro))
	ctx := context.Background()

	a := mustAdd(t, svc, "A")
	b := mustAdd(t, svc, "B")
	// B ya tiene una campaña activa del tipo: debe omitirse.
	_, err := svc.AddCampaign(ctx, b.ID, entity.CampaignFollowUp)
	require.NoError(t, err)

	enrolled, err := svc.AddCustomersToCampaign(ctx, []string{a.ID, b.ID, "no-existe"}, entity.CampaignFollowUp)
	require.NoError(t, err)
	assert.Equal(t, 1, enrolled, "solo A se inscribe; B ya tenía y el tercero no existe")

	outA, err := svc.GetByID(a.ID)
	require.NoError(t, err)
	require.Len(t, outA.Campaigns, 1)

	members, err := svc.CustomersByCampaign(entity.CampaignFollowUp)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests buckets de recencia
// ──────────────────────────────────────────────────────────────────────────────

// newTestServiceWithRepo expone también el repositorio, para que los tests de
// buckets puedan retrodatar clientes sin pasar por el servicio.
func newTestServiceWithRepo(user *entity.User) (*crm.Service, repository.CustomerRepository) {
	repo := memory.NewCustomerRepository()
	svc := crm.NewService(repo, redisstore.Noop{}, &stubSession{user: user}, nil, testLogger())
	return svc, repo
}

func seedForBuckets(t *testing.T, svc *crm.Service, repo repository.CustomerRepository, now time.Time) (string, string, string) {
	t.Helper()
	ctx := context.Background()

	recent := now.AddDate(0, 0, -12)
	fresh, err := svc.Add(ctx, dto.CreateCustomerRequest{Name: "Nuevo"})
	require.NoError(t, err)

	served, err := svc.Add(ctx, dto.CreateCustomerRequest{Name: "Servido", LastServiceDate: &recent})
	require.NoError(t, err)
	// Fuera de la ventana de nuevos: su bucket lo decide la fecha de servicio.
	backdate(t, repo, served.ID, now.AddDate(0, -3, 0))

	old := now.AddDate(0, -8, 0)
	dormant, err := svc.Add(ctx, dto.CreateCustomerRequest{Name: "Dormido", LastServiceDate: &old})
	require.NoError(t, err)
	backdate(t, repo, dormant.ID, now.AddDate(0, -12, 0))

	return fresh.ID, served.ID, dormant.ID
}

// backdate mueve el CreatedAt de un cliente por debajo del servicio, para
// simular antigüedad sin depender del reloj.
func backdate(t *testing.T, repo repository.CustomerRepository, id string, createdAt time.Time) {
	t.Helper()
	c, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, c)
	c.CreatedAt = createdAt
	require.NoError(t, repo.Update(c))
}

// bucketIDs ayuda a afirmar pertenencia sin depender del orden.
func bucketIDs(customers []*entity.Customer) []string {
	ids := make([]string, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID)
	}
	return ids
}

// Los filtros son independientes: el cliente recién creado sin fecha de
// servicio aparece a la vez en nuevos y en inactivos.
func TestAutomaticCampaignBuckets_Clasificacion(t *testing.T) {
	svc, repo := newTestServiceWithRepo(userWithTier(entity.TierPro))
	now := time.Now()
	freshID, servedID, dormantID := seedForBuckets(t, svc, repo, now)

	buckets, err := svc.AutomaticCampaignBuckets(now)
	require.NoError(t, err)

	assert.Equal(t, []string{freshID}, bucketIDs(buckets.NewCustomers))
	assert.Equal(t, []string{servedID}, bucketIDs(buckets.CompletedService))
	assert.ElementsMatch(t, []string{freshID, dormantID}, bucketIDs(buckets.Inactive))
}

// Un cliente sin fecha de servicio siempre cae en inactivos, tenga la
// antigüedad que tenga.
func TestAutomaticCampaignBuckets_SinFechaDeServicioEsInactivo(t *testing.T) {
	svc, repo := newTestServiceWithRepo(userWithTier(entity.TierPro))
	now := time.Now()
	ctx := context.Background()

	antiguo, err := svc.Add(ctx, dto.CreateCustomerRequest{Name: "Sin servicio"})
	require.NoError(t, err)
	backdate(t, repo, antiguo.ID, now.AddDate(0, -2, 0))

	recien, err := svc.Add(ctx, dto.CreateCustomerRequest{Name: "Recién llegado"})
	require.NoError(t, err)

	buckets, err := svc.AutomaticCampaignBuckets(now)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{antiguo.ID, recien.ID}, bucketIDs(buckets.Inactive),
		"sin lastServiceDate el cliente es inactivo aunque sea nuevo")
	assert.Equal(t, []string{recien.ID}, bucketIDs(buckets.NewCustomers))
	assert.Empty(t, buckets.CompletedService)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests campañas automáticas
// ──────────────────────────────────────────────────────────────────────────────

// Cada bucket recibe su tipo de campaña.
func TestRunAutomaticCampaigns_AsignaTipoPorBucket(t *testing.T) {
	svc, repo := newTestServiceWithRepo(userWithTier(entity.TierPro))
	now := time.Now()
	freshID, servedID, dormantID := seedForBuckets(t, svc, repo, now)

	scheduled, err := svc.RunAutomaticCampaigns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, scheduled)

	expectCampaign(t, svc, freshID, entity.CampaignNewCustomer)
	expectCampaign(t, svc, servedID, entity.CampaignReminder)
	expectCampaign(t, svc, dormantID, entity.CampaignWinBack)
	// El nuevo sin fecha de servicio también recibe win_back.
	expectCampaign(t, svc, freshID, entity.CampaignWinBack)
}

func expectCampaign(t *testing.T, svc *crm.Service, customerID string, campaignType entity.CampaignType) {
	t.Helper()
	c, err := svc.GetByID(customerID)
	require.NoError(t, err)
	assert.NotNil(t, c.ActiveCampaignOfType(campaignType),
		"el cliente %s debe tener campaña %s", c.Name, campaignType)
}

// Repetir la ejecución no duplica campañas (idempotencia por tipo activo).
func TestRunAutomaticCampaigns_RepetirNoDuplica(t *testing.T) {
	svc, repo := newTestServiceWithRepo(userWithTier(entity.TierPro))
	seedForBuckets(t, svc, repo, time.Now())
	ctx := context.Background()

	_, err := svc.RunAutomaticCampaigns(ctx)
	require.NoError(t, err)
	scheduled, err := svc.RunAutomaticCampaigns(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, scheduled)

	stats, err := svc.CampaignStatistics()
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalCampaigns)
}

// failingCustomerRepo falla todo Update a partir de cierto número de llamada.
type failingCustomerRepo struct {
	repository.CustomerRepository
	updates   int
	failAfter int
}

var errStorageDown = errors.New("almacenamiento no disponible")

func (r *failingCustomerRepo) Update(c *entity.Customer) error {
	r.updates++
	if r.updates > r.failAfter {
		return errStorageDown
	}
	return r.CustomerRepository.Update(c)
}

// El lote automático es secuencial y aborta en el primer fallo; lo programado
// antes del fallo queda programado.
func TestRunAutomaticCampaigns_AbortaEnElPrimerFallo(t *testing.T) {
	inner := memory.NewCustomerRepository()
	repo := &failingCustomerRepo{CustomerRepository: inner, failAfter: 1}
	svc := crm.NewService(repo, redisstore.Noop{}, &stubSession{user: userWithTier(entity.TierPro)}, nil, testLogger())
	ctx := context.Background()

	// Dos clientes nuevos: el primer Update (campaña) pasa, el segundo falla.
	_, err := svc.Add(ctx, dto.CreateCustomerRequest{Name: "Primero"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, dto.CreateCustomerRequest{Name: "Segundo"})
	require.NoError(t, err)

	repo.updates = 0
	scheduled, err := svc.RunAutomaticCampaigns(ctx)
	assert.ErrorIs(t, err, errStorageDown)
	assert.Equal(t, 1, scheduled, "lo anterior al fallo queda programado")

	stats, statsErr := svc.CampaignStatistics()
	require.NoError(t, statsErr)
	assert.Equal(t, 1, stats.TotalCampaigns)
}
