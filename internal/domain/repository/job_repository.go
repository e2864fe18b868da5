package repository

import "github.com/simplepro/simplepro-api/internal/domain/entity"

// JobRepository define el puerto de persistencia para Job.
type JobRepository interface {
	Create(job *entity.Job) error
	GetByID(id string) (*entity.Job, error)
	// GetByQuoteID devuelve el job que referencia la cotización, o nil.
	// Invariante del dominio: a lo sumo un job por cotización.
	GetByQuoteID(quoteID string) (*entity.Job, error)
	Update(job *entity.Job) error
	Delete(id string) error
	All() ([]*entity.Job, error)
	Count() (int, error)
	ReplaceAll(jobs []*entity.Job) error
}
