package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/simplepro/simplepro-api/internal/application/dto"
	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
	"github.com/simplepro/simplepro-api/internal/domain/repository"
	"github.com/simplepro/simplepro-api/pkg/logger"
)

const jobSnapshotNamespace = "job-storage"

// JobSeedFunc genera trabajos de ejemplo para la cuenta de prueba.
type JobSeedFunc func(now time.Time) []*entity.Job

// JobUseCase casos de uso de trabajos agendados.
type JobUseCase struct {
	repo      repository.JobRepository
	quotes    repository.QuoteRepository
	snapshots repository.SnapshotStore
	session   Session
	seed      JobSeedFunc
	log       *logger.Logger
}

// NewJobUseCase construye el caso de uso. El repositorio de cotizaciones se
// necesita para la conversión cotización -> trabajo.
func NewJobUseCase(
	repo repository.JobRepository,
	quotes repository.QuoteRepository,
	snapshots repository.SnapshotStore,
	session Session,
	seed JobSeedFunc,
	log *logger.Logger,
) *JobUseCase {
	return &JobUseCase{repo: repo, quotes: quotes, snapshots: snapshots, session: session, seed: seed, log: log}
}

// InitializeForUser carga el estado del usuario: datos de ejemplo para la
// cuenta de prueba, snapshot persistido para el resto.
func (uc *JobUseCase) InitializeForUser(ctx context.Context, userID string) error {
	if userID == entity.TestUserID && uc.seed != nil {
		return uc.repo.ReplaceAll(uc.seed(time.Now()))
	}
	var jobs []*entity.Job
	found, err := uc.snapshots.Load(ctx, jobSnapshotNamespace+":"+userID, &jobs)
	if err != nil {
		return err
	}
	if !found {
		jobs = nil
	}
	return uc.repo.ReplaceAll(jobs)
}

// Reset vacía el estado en memoria (logout).
func (uc *JobUseCase) Reset(ctx context.Context) error {
	return uc.repo.ReplaceAll(nil)
}

// Create crea un trabajo agendado. Prioridad por defecto: medium.
func (uc *JobUseCase) Create(ctx context.Context, in dto.CreateJobRequest) (*entity.Job, error) {
	user := uc.session.CurrentUser()
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	count, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	if !entity.WithinLimit(count, user.Limits().Jobs) {
		return nil, domain.ErrQuotaExceeded
	}

	priority := entity.JobPriority(in.Priority)
	if priority == "" {
		priority = entity.PriorityMedium
	}
	now := time.Now()
	job := &entity.Job{
		ID:              uuid.New().String(),
		CustomerID:      in.CustomerID,
		Title:           in.Title,
		Description:     in.Description,
		Status:          entity.JobScheduled,
		Priority:        priority,
		ScheduledDate:   in.ScheduledDate,
		ScheduledTime:   in.ScheduledTime,
		Notes:           in.Notes,
		CalendarEventID: in.CalendarEventID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(job); err != nil {
		return nil, err
	}
	uc.persist(ctx)
	return job, nil
}

// Update aplica una actualización parcial y refresca UpdatedAt.
func (uc *JobUseCase) Update(ctx context.Context, id string, in dto.UpdateJobRequest) (*entity.Job, error) {
	job, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if in.Title != nil {
		job.Title = *in.Title
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Priority != nil {
		job.Priority = entity.JobPriority(*in.Priority)
	}
	if in.ScheduledDate != nil {
		job.ScheduledDate = *in.ScheduledDate
	}
	if in.ScheduledTime != nil {
		job.ScheduledTime = *in.ScheduledTime
	}
	if in.Notes != nil {
		job.Notes = *in.Notes
	}
	if in.CalendarEventID != nil {
		job.CalendarEventID = *in.CalendarEventID
	}
	job.UpdatedAt = time.Now()
	if err := uc.repo.Update(job); err != nil {
		return nil, err
	}
	uc.persist(ctx)
	return job, nil
}

// UpdateStatus cambia el estado del trabajo. Al pasar a completed se fija
// CompletedAt; al salir de completed se limpia.
func (uc *JobUseCase) UpdateStatus(ctx context.Context, id string, status entity.JobStatus) (*entity.Job, error) {
	job, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	if status == entity.JobCompleted && job.Status != entity.JobCompleted {
		job.CompletedAt = &now
	}
	if status != entity.JobCompleted {
		job.CompletedAt = nil
	}
	job.Status = status
	job.UpdatedAt = now
	if err := uc.repo.Update(job); err != nil {
		return nil, err
	}
	uc.persist(ctx)
	return job, nil
}

// Delete elimina un trabajo.
func (uc *JobUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.persist(ctx)
	return nil
}

// GetByID obtiene un trabajo. ErrNotFound si no existe.
func (uc *JobUseCase) GetByID(id string) (*entity.Job, error) {
	job, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

// GetByQuoteID devuelve el trabajo ligado a una cotización, o ErrNotFound.
func (uc *JobUseCase) GetByQuoteID(quoteID string) (*entity.Job, error) {
	job, err := uc.repo.GetByQuoteID(quoteID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

// List devuelve todos los trabajos en orden de inserción.
func (uc *JobUseCase) List() ([]*entity.Job, error) {
	return uc.repo.All()
}

// ListByDate filtra trabajos por fecha agendada (YYYY-MM-DD).
func (uc *JobUseCase) ListByDate(date string) ([]*entity.Job, error) {
	jobs, err := uc.repo.All()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Job, 0)
	for _, j := range jobs {
		if j.ScheduledDate == date {
			out = append(out, j)
		}
	}
	return out, nil
}

// ListByStatus filtra trabajos por estado.
func (uc *JobUseCase) ListByStatus(status entity.JobStatus) ([]*entity.Job, error) {
	jobs, err := uc.repo.All()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Job, 0)
	for _, j := range jobs {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out, nil
}

// ListByPriority filtra trabajos por prioridad.
func (uc *JobUseCase) ListByPriority(priority entity.JobPriority) ([]*entity.Job, error) {
	jobs, err := uc.repo.All()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Job, 0)
	for _, j := range jobs {
		if j.Priority == priority {
			out = append(out, j)
		}
	}
	return out, nil
}

// ListByCustomer filtra trabajos por cliente.
func (uc *JobUseCase) ListByCustomer(customerID string) ([]*entity.Job, error) {
	jobs, err := uc.repo.All()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Job, 0)
	for _, j := range jobs {
		if j.CustomerID == customerID {
			out = append(out, j)
		}
	}
	return out, nil
}

// Count número de trabajos del usuario actual.
func (uc *JobUseCase) Count() (int, error) {
	return uc.repo.Count()
}

// CanAdd indica si el plan del usuario actual admite un trabajo más.
func (uc *JobUseCase) CanAdd() bool {
	user := uc.session.CurrentUser()
	if user == nil {
		return false
	}
	count, err := uc.repo.Count()
	if err != nil {
		return false
	}
	return entity.WithinLimit(count, user.Limits().Jobs)
}

// CreateJobFromQuote convierte una cotización aprobada o agendada en trabajo.
// Secuencia: verificar unicidad del enlace y estado, crear el trabajo, marcar
// la cotización como converted con JobID. Si el marcado falla, el trabajo
// recién creado se elimina para no dejar un enlace huérfano.
func (uc *JobUseCase) CreateJobFromQuote(ctx context.Context, quoteID string) (*entity.Job, error) {
	quote, err := uc.quotes.GetByID(quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByQuoteID(quoteID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	if !quote.Status.ConvertibleToJob() {
		return nil, domain.ErrInvalidState
	}

	user := uc.session.CurrentUser()
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	count, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	if !entity.WithinLimit(count, user.Limits().Jobs) {
		return nil, domain.ErrQuotaExceeded
	}

	now := time.Now()
	scheduledDate := quote.ScheduledDate
	if scheduledDate == "" {
		scheduledDate = now.Format("2006-01-02")
	}
	scheduledTime := quote.ScheduledTime
	if scheduledTime == "" {
		scheduledTime = "09:00"
	}
	job := &entity.Job{
		ID:              uuid.New().String(),
		CustomerID:      quote.CustomerID,
		QuoteID:         quote.ID,
		Title:           "Trabajo de la cotización #" + quote.ID,
		Description:     "Trabajo creado a partir de la cotización #" + quote.ID,
		Notes:           quote.Notes,
		Status:          entity.JobScheduled,
		Priority:        entity.PriorityMedium,
		ScheduledDate:   scheduledDate,
		ScheduledTime:   scheduledTime,
		CalendarEventID: quote.CalendarEventID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(job); err != nil {
		return nil, err
	}

	quote.Status = entity.QuoteConverted
	quote.JobID = job.ID
	quote.UpdatedAt = now
	if err := uc.quotes.Update(quote); err != nil {
		// Acción compensatoria: sin la cotización marcada, el trabajo
		// quedaría huérfano del enlace uno a uno.
		if derr := uc.repo.Delete(job.ID); derr != nil {
			uc.log.Error().Err(derr).Str("job_id", job.ID).Msg("conversión: no se pudo revertir el trabajo creado")
		}
		return nil, err
	}
	uc.persist(ctx)
	uc.persistQuotes(ctx)
	return job, nil
}

func (uc *JobUseCase) persist(ctx context.Context) {
	user := uc.session.CurrentUser()
	if user == nil {
		return
	}
	jobs, err := uc.repo.All()
	if err != nil {
		uc.log.Warn().Err(err).Msg("snapshot de trabajos: leer repositorio")
		return
	}
	key := jobSnapshotNamespace + ":" + user.ID
	if err := uc.snapshots.Save(ctx, key, jobs); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("snapshot de trabajos: guardar")
	}
}

// persistQuotes guarda el snapshot de cotizaciones tras la conversión, que
// muta ambos stores en una sola operación.
func (uc *JobUseCase) persistQuotes(ctx context.Context) {
	user := uc.session.CurrentUser()
	if user == nil {
		return
	}
	quotes, err := uc.quotes.All()
	if err != nil {
		uc.log.Warn().Err(err).Msg("snapshot de cotizaciones: leer repositorio")
		return
	}
	key := quoteSnapshotNamespace + ":" + user.ID
	if err := uc.snapshots.Save(ctx, key, quotes); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("snapshot de cotizaciones: guardar")
	}
}
