// Package memory implementa los puertos de persistencia sobre colecciones en
// memoria. El sistema no tiene base de datos relacional: el estado vive en el
// proceso y se respalda por snapshots clave-valor (ver redisstore).
package memory

import (
	"sync"

	"github.com/simplepro/simplepro-api/internal/domain"
	"github.com/simplepro/simplepro-api/internal/domain/entity"
	"github.com/simplepro/simplepro-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo repositorio de clientes en memoria, con orden de inserción estable.
type CustomerRepo struct {
	mu    sync.RWMutex
	items []*entity.Customer
	index map[string]int // id -> posición en items
}

// NewCustomerRepository construye el repositorio vacío.
func NewCustomerRepository() *CustomerRepo {
	return &CustomerRepo{index: make(map[string]int)}
}

func cloneCustomer(c *entity.Customer) *entity.Customer {
	cp := *c
	cp.Campaigns = append([]entity.Campaign(nil), c.Campaigns...)
	return &cp
}

// Create persiste un nuevo cliente. Devuelve ErrConflict si el ID ya existe.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[customer.ID]; ok {
		return domain.ErrConflict
	}
	r.index[customer.ID] = len(r.items)
	r.items = append(r.items, cloneCustomer(customer))
	return nil
}

// GetByID obtiene un cliente por ID; nil si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}
	return cloneCustomer(r.items[i]), nil
}

// Update reemplaza el cliente completo. ErrNotFound si el ID no existe.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[customer.ID]
	if !ok {
		return domain.ErrNotFound
	}
	r.items[i] = cloneCustomer(customer)
	return nil
}

// Delete elimina un cliente por ID. No-op si no existe.
func (r *CustomerRepo) Delete(id string) error {
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

// All devuelve copias de todos los clientes en orden de inserción.
func (r *CustomerRepo) All() ([]*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Customer, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, cloneCustomer(c))
	}
	return out, nil
}

// Count devuelve el número de clientes.
func (r *CustomerRepo) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

// ReplaceAll sustituye el contenido completo del repositorio.
func (r *CustomerRepo) ReplaceAll(customers []*entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make([]*entity.Customer, 0, len(customers))
	r.index = make(map[string]int, len(customers))
	for _, c := range customers {
		if _, ok := r.index[c.ID]; ok {
			return domain.ErrConflict
		}
		r.index[c.ID] = len(r.items)
		r.items = append(r.items, cloneCustomer(c))
	}
	return nil
}
