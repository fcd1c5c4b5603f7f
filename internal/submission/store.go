package submission

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no record exists for the given identifier.
	ErrNotFound = errors.New("record not found")
)

// Store persists trust score records. Implementations must be safe for
// concurrent use.
type Store interface {
	Append(ctx context.Context, record TrustScoreRecord) error
	List(ctx context.Context) ([]TrustScoreRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (TrustScoreRecord, error)
	// UpdateAdjustment overwrites the admin adjustment and the recomputed
	// trust score for one record.
	UpdateAdjustment(ctx context.Context, id uuid.UUID, adjustment, trustScore float64) error
	Health(ctx context.Context) error
}
