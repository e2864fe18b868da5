package memory

import (
	"sync"

	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
	"github.com/simplepro/simplepro-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo repositorio de trabajos en memoria.
type JobRepo struct {
	mu    sync.RWMutex
	items []*entity.Job
	index map[string]int
}

// NewJobRepository construye el repositorio vacío.
func NewJobRepository() *JobRepo {
	return &JobRepo{index: make(map[string]int)}
}

func cloneJob(j *entity.Job) *entity.Job {
	cp := *j
	return &cp
}

// Create persiste un nuevo trabajo. ErrConflict si el ID ya existe.
func (r *JobRepo) Create(job *entity.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[job.ID]; ok {
		return domain.ErrConflict
	}
	r.index[job.ID] = len(r.items)
	r.items = append(r.items, cloneJob(job))
	return nil
}

// GetByID obtiene un trabajo por ID; nil si no existe.
func (r *JobRepo) GetByID(id string) (*entity.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}
	return cloneJob(r.items[i]), nil
}

// GetByQuoteID obtiene el trabajo que referencia la cotización; nil si no existe.
func (r *JobRepo) GetByQuoteID(quoteID string) (*entity.Job, error) {
	if quoteID == "" {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, j := range r.items {
		if j.QuoteID == quoteID {
			return cloneJob(j), nil
		}
	}
	return nil, nil
}

// Update reemplaza el trabajo completo. ErrNotFound si el ID no existe.
func (r *JobRepo) Update(job *entity.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[job.ID]
	if !ok {
		return domain.ErrNotFound
	}
	r.items[i] = cloneJob(job)
	return nil
}

// Delete elimina un trabajo por ID. No-op si no existe.
func (r *JobRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return nil
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.items); j++ {
		r.index[r.items[j].ID] = j
	}
	return nil
}

// All devuelve copias de todos los trabajos en orden de inserción.
func (r *JobRepo) All() ([]*entity.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Job, 0, len(r.items))
	for _, j := range r.items {
		out = append(out, cloneJob(j))
	}
	return out, nil
}

// Count devuelve el número de trabajos.
func (r *JobRepo) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

// ReplaceAll sustituye el contenido completo del repositorio.
func (r *JobRepo) ReplaceAll(jobs []*entity.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make([]*entity.Job, 0, len(jobs))
	r.index = make(map[string]int, len(jobs))
	for _, j := range jobs {
		if _, ok := r.index[j.ID]; ok {
			return domain.ErrConflict
		}
		r.index[j.ID] = len(r.items)
		r.items = append(r.items, cloneJob(j))
	}
	return nil
}
