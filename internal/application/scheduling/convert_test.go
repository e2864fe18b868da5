package scheduling_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/application/scheduling"
	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
	"github.com/simplepro/simplepro-api/internal/domain/repository"
	"github.com/simplepro/simplepro-api/internal/infrastructure/memory"
	"github.com/simplepro/simplepro-api/internal/infrastructure/redisstore"
	"github.com/simplepro/simplepro-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type stubSession struct {
	user *entity.User
}

func (s *stubSession) CurrentUser() *entity.User { return s.user }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

type fixture struct {
	quotes    *scheduling.QuoteUseCase
	jobs      *scheduling.JobUseCase
	quoteRepo repository.QuoteRepository
	jobRepo   repository.JobRepository
}

func newFixture(quoteRepo repository.QuoteRepository, jobRepo repository.JobRepository) *fixture {
	session := &stubSession{user: &entity.User{ID: "user_1", Tier: entity.TierPro}}
	log := testLogger()
	return &fixture{
		quotes:    scheduling.NewQuoteUseCase(quoteRepo, redisstore.Noop{}, session, nil, log),
		jobs:      scheduling.NewJobUseCase(jobRepo, quoteRepo, redisstore.Noop{}, session, nil, log),
		quoteRepo: quoteRepo,
		jobRepo:   jobRepo,
	}
}

func newMemoryFixture() *fixture {
	return newFixture(memory.NewQuoteRepository(), memory.NewJobRepository())
}

// createQuote crea una cotización con una línea y la lleva al estado dado.
func createQuote(t *testing.T, f *fixture, status string) *entity.Quote {
	t.Helper()
	ctx := context.Background()
	q, err := f.quotes.Create(ctx, dto.CreateQuoteRequest{
		CustomerID:    "cust_1",
		Title:         "Remodelación de cocina",
		ScheduledDate: "2026-09-15",
		ScheduledTime: "10:30",
		Notes:         "Acceso por el garaje",
		Items: []dto.QuoteItemRequest{
			{Description: "Mano de obra", Quantity: 2, UnitPrice: decimal.NewFromInt(150)},
		},
	})
	require.NoError(t, err)
	if status != "draft" {
		q, err = f.quotes.Update(ctx, q.ID, dto.UpdateQuoteRequest{Status: &status})
		require.NoError(t, err)
	}
	return q
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests creación de cotización
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateQuote_NaceEnDraftYTotaliza(t *testing.T) {
	f := newMemoryFixture()
	q := createQuote(t, f, "draft")

	assert.Equal(t, entity.QuoteDraft, q.Status)
	require.Len(t, q.Items, 1)
	assert.True(t, q.Items[0].Total.Equal(decimal.NewFromInt(300)), "2 x 150 = 300")
	assert.True(t, q.Total.Equal(decimal.NewFromInt(300)))
	assert.Empty(t, q.JobID)
}

// El plan free admite una sola cotización.
func TestCreateQuote_PlanFreeLimitaAUna(t *testing.T) {
	session := &stubSession{user: &entity.User{ID: "user_1", Tier: entity.TierFree}}
	quotes := scheduling.NewQuoteUseCase(memory.NewQuoteRepository(), redisstore.Noop{}, session, nil, testLogger())
	ctx := context.Background()

	_, err := quotes.Create(ctx, dto.CreateQuoteRequest{CustomerID: "c1", Title: "Primera"})
	require.NoError(t, err)
	_, err = quotes.Create(ctx, dto.CreateQuoteRequest{CustomerID: "c1", Title: "Segunda"})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests conversión cotización -> trabajo
// ──────────────────────────────────────────────────────────────────────────────

// Solo approved y scheduled son convertibles.
func TestCreateJobFromQuote_DraftNoConvertible(t *testing.T) {
	f := newMemoryFixture()
	q := createQuote(t, f, "draft")

	_, err := f.jobs.CreateJobFromQuote(context.Background(), q.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	jobs, err := f.jobs.List()
	require.NoError(t, err)
	assert.Empty(t, jobs, "una conversión rechazada no deja trabajos")
}

func TestCreateJobFromQuote_CotizacionInexistente(t *testing.T) {
	f := newMemoryFixture()
	_, err := f.jobs.CreateJobFromQuote(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La conversión copia los campos de la cotización y enlaza ambos registros.
func TestCreateJobFromQuote_CopiaCamposYEnlaza(t *testing.T) {
	f := newMemoryFixture()
	q := createQuote(t, f, "approved")

	job, err := f.jobs.CreateJobFromQuote(context.Background(), q.ID)
	require.NoError(t, err)

	assert.Equal(t, q.CustomerID, job.CustomerID)
	assert.Equal(t, q.ID, job.QuoteID)
	assert.Equal(t, "Trabajo de la cotización #"+q.ID, job.Title)
	assert.Equal(t, "Trabajo creado a partir de la cotización #"+q.ID, job.Description)
	assert.Equal(t, "Acceso por el garaje", job.Notes, "las notas se copian tal cual")
	assert.Equal(t, "2026-09-15", job.ScheduledDate)
	assert.Equal(t, "10:30", job.ScheduledTime)
	assert.Equal(t, entity.JobScheduled, job.Status)
	assert.Equal(t, entity.PriorityMedium, job.Priority)

	// La cotización queda marcada y con el backlink.
	updated, err := f.quotes.GetByID(q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteConverted, updated.Status)
	assert.Equal(t, job.ID, updated.JobID)
}

// Una cotización sin fecha agendada recibe valores por defecto al convertirse.
func TestCreateJobFromQuote_SinAgendaUsaDefaults(t *testing.T) {
	f := newMemoryFixture()
	ctx := context.Background()
	q, err := f.quotes.Create(ctx, dto.CreateQuoteRequest{CustomerID: "c1", Title: "Sin agenda"})
	require.NoError(t, err)
	status := "scheduled"
	_, err = f.quotes.Update(ctx, q.ID, dto.UpdateQuoteRequest{Status: &status})
	require.NoError(t, err)

	job, err := f.jobs.CreateJobFromQuote(ctx, q.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, job.ScheduledDate)
	assert.Equal(t, "09:00", job.ScheduledTime)
}

// A lo sumo un trabajo por cotización: el segundo intento falla con conflicto.
func TestCreateJobFromQuote_SegundaConversionEsConflicto(t *testing.T) {
	f := newMemoryFixture()
	q := createQuote(t, f, "approved")
	ctx := context.Background()

	_, err := f.jobs.CreateJobFromQuote(ctx, q.ID)
	require.NoError(t, err)
	_, err = f.jobs.CreateJobFromQuote(ctx, q.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "ya existe un trabajo ligado a la cotización")

	jobs, err := f.jobs.List()
	require.NoError(t, err)
	assert.Len(t, jobs, 1, "exactamente un trabajo por cotización")
}

// failingQuoteRepo falla el Update número N.
type failingQuoteRepo struct {
	repository.QuoteRepository
	updates int
	failOn  int
}

var errQuoteStorage = errors.New("almacenamiento de cotizaciones no disponible")

func (r *failingQuoteRepo) Update(q *entity.Quote) error {
	r.updates++
	if r.updates == r.failOn {
		return errQuoteStorage
	}
	return r.QuoteRepository.Update(q)
}

// Si el marcado de la cotización falla, el trabajo creado se revierte:
// no quedan trabajos huérfanos del enlace.
func TestCreateJobFromQuote_CompensaSiElMarcadoFalla(t *testing.T) {
	quoteRepo := &failingQuoteRepo{QuoteRepository: memory.NewQuoteRepository()}
	f := newFixture(quoteRepo, memory.NewJobRepository())
	q := createQuote(t, f, "approved")
	// El siguiente Update es el marcado de la conversión.
	quoteRepo.failOn = quoteRepo.updates + 1

	_, err := f.jobs.CreateJobFromQuote(context.Background(), q.ID)
	assert.ErrorIs(t, err, errQuoteStorage)

	jobs, listErr := f.jobs.List()
	require.NoError(t, listErr)
	assert.Empty(t, jobs, "el trabajo creado se revierte cuando el marcado falla")

	// La cotización sigue convertible.
	unchanged, getErr := f.quotes.GetByID(q.ID)
	require.NoError(t, getErr)
	assert.Equal(t, entity.QuoteApproved, unchanged.Status)
	assert.Empty(t, unchanged.JobID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests estado de trabajos
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateJobStatus_CompletedFijaCompletedAt(t *testing.T) {
	f := newMemoryFixture()
	ctx := context.Background()
	job, err := f.jobs.Create(ctx, dto.CreateJobRequest{
		CustomerID: "c1", Title: "Pintura", ScheduledDate: "2026-09-20", ScheduledTime: "08:00",
	})
	require.NoError(t, err)
	assert.Nil(t, job.CompletedAt)

	job, err = f.jobs.UpdateStatus(ctx, job.ID, entity.JobCompleted)
	require.NoError(t, err)
	require.NotNil(t, job.CompletedAt)

	// Reabrir el trabajo limpia la marca de finalización.
	job, err = f.jobs.UpdateStatus(ctx, job.ID, entity.JobInProgress)
	require.NoError(t, err)
	assert.Nil(t, job.CompletedAt)
}
