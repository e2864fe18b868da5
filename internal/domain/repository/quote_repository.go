package repository

import "github.com/simplepro/simplepro-api/internal/domain/entity"

// QuoteRepository define el puerto de persistencia para Quote.
type QuoteRepository interface {
	Create(quote *entity.Quote) error
	GetByID(id string) (*entity.Quote, error)
	Update(quote *entity.Quote) error
	Delete(id string) error
	All() ([]*entity.Quote, error)
	Count() (int, error)
	ReplaceAll(quotes []*entity.Quote) error
}
