package memory

import (
	"sync"

	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
	"github.com/simplepro/simplepro-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo repositorio de cotizaciones en memoria.
type QuoteRepo struct {
	mu    sync.RWMutex
	items []*entity.Quote
	index map[string]int
}

// NewQuoteRepository construye el repositorio vacío.
func NewQuoteRepository() *QuoteRepo {
	return &QuoteRepo{index: make(map[string]int)}
}

func cloneQuote(q *entity.Quote) *entity.Quote {
	cp := *q
	cp.Items = append([]entity.QuoteItem(nil), q.Items...)
	return &cp
}

// Create persiste una nueva cotización. ErrConflict si el ID ya existe.
func (r *QuoteRepo) Create(quote *entity.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[quote.ID]; ok {
		return domain.ErrConflict
	}
	r.index[quote.ID] = len(r.items)
	r.items = append(r.items, cloneQuote(quote))
	return nil
}

// GetByID obtiene una cotización por ID; nil si no existe.
func (r *QuoteRepo) GetByID(id string) (*entity.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}
	return cloneQuote(r.items[i]), nil
}

// Update reemplaza la cotización completa. ErrNotFound si el ID no existe.
func (r *QuoteRepo) Update(quote *entity.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[quote.ID]
	if !ok {
		return domain.ErrNotFound
	}
	r.items[i] = cloneQuote(quote)
	return nil
}

// Delete elimina una cotización por ID. No-op si no existe.
func (r *QuoteRepo) Delete(id string) error {
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

// All devuelve copias de todas las cotizaciones en orden de inserción.
func (r *QuoteRepo) All() ([]*entity.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Quote, 0, len(r.items))
	for _, q := range r.items {
		out = append(out, cloneQuote(q))
	}
	return out, nil
}

// Count devuelve el número de cotizaciones.
func (r *QuoteRepo) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

// ReplaceAll sustituye el contenido completo del repositorio.
func (r *QuoteRepo) ReplaceAll(quotes []*entity.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make([]*entity.Quote, 0, len(quotes))
	r.index = make(map[string]int, len(quotes))
	for _, q := range quotes {
		if _, ok := r.index[q.ID]; ok {
			return domain.ErrConflict
		}
		r.index[q.ID] = len(r.items)
		r.items = append(r.items, cloneQuote(q))
	}
	return nil
}
