// Package history persists generated melodies so they can be listed,
// reopened in the browser and exported again.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/togramago/melodygen/internal/generator"
)

// ErrNotFound is returned when no melody has the requested id.
var ErrNotFound = errors.New("melody not found")

// MaxListLimit caps List.
const MaxListLimit = 100

// Entry is one stored melody. Melody is nil in List results.
type Entry struct {
	ID            string            `json:"id"`
	CreatedAt     time.Time         `json:"created_at"`
	Key           string            `json:"key"`
	TimeSignature string            `json:"time_signature"`
	Bars          int               `json:"bars"`
	Voices        int               `json:"voices"`
	Seed          uint64            `json:"seed"`
	PartialBars   int               `json:"partial_bars"`
	Melody        *generator.Melody `json:"melody,omitempty"`
}

// Store defines the melody history interface.
type Store interface {
	// Save stores m and returns its entry with a fresh id.
	Save(ctx context.Context, m *generator.Melody) (*Entry, error)

	// Get loads one melody by id.
	Get(ctx context.Context, id string) (*Entry, error)

	// List returns the newest entries first, without their melodies.
	// limit is clamped to 1..MaxListLimit.
	List(ctx context.Context, limit int) ([]Entry, error)

	// Ping checks that the backing database is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying database.
	Close() error
}
