package storage

import (
	"errors"

	"github.com/ahasite/sitediary/internal/models"
)

// ErrNotFound signals a lookup for an id the store does not hold. It is a
// signal, not a failure: Get returns it for any missing key.
var ErrNotFound = errors.New("record not found")

// Provider is the local record store. Implementations are durable: a Put that
// returns nil survives process restart, and a Put that returns an error leaves
// the prior state for that id unchanged.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	Put(models.Record) (models.Record, error)
	Get(id string) (models.Record, error)
	GetAll() ([]models.Record, error)
	QueryByStatus(status models.Status) ([]models.Record, error)
	QueryByDateRange(start, end string) ([]models.Record, error)
	Delete(id string) error

	// Utils
	GetConfigPath() string
}
