package port

import "syllabus/internal/domain"

type CollectionStore interface {
	PutUnit(unit domain.Unit) error

	GetUnit(slug string) (domain.Unit, error)

	DeleteUnit(slug string) error

	ListUnits() ([]domain.Unit, error)

	PutOrder(slugs []string) error

	GetOrder() ([]string, error)

	GetStats() (domain.Stats, error)

	UpdateStats(stats domain.Stats) error

	Clear() error

	Close() error
}
