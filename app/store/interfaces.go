package store

import (
	"time"

	"github.com/lysyi3m/draw-comb/app/draw"
)

// Store is a per-game (or shared) durable record of which results have
// already been recorded and announced.
type Store interface {
	// Records returns all persisted rows in append order.
	Records() ([]Record, error)

	// ExistingKeys returns the identity set over rows with non-empty game
	// and phase.
	ExistingKeys() (map[string]struct{}, error)

	// AppendNew persists the given results that are not already present by
	// identity key and returns how many were appended. Existing rows are
	// never mutated or removed; an input that adds nothing performs no write.
	AppendNew(results []draw.Result, now time.Time) (int, error)

	Close() error
}

var _ Store = (*XLSXStore)(nil)
var _ Store = (*SQLiteStore)(nil)
