package repository

import "github.com/simplepro/simplepro-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// All devuelve los clientes en orden de inserción; las implementaciones no deben
// compartir punteros internos con el llamador.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
	All() ([]*entity.Customer, error)
	Count() (int, error)
	// ReplaceAll sustituye el contenido completo (carga de snapshot o datos de ejemplo).
	ReplaceAll(customers []*entity.Customer) error
}
