package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

// Querier is the interface Queries implements, used so callers (and tests,
// via go-sqlmock) can depend on an interface rather than a concrete type.
type Querier interface {
	IncrementSessionsStarted(ctx context.Context, serverIP pqtype.Inet) error
	IncrementSessionsEndedSunk(ctx context.Context, serverIP pqtype.Inet) error
	IncrementSessionsEndedSurrender(ctx context.Context, serverIP pqtype.Inet) error
	IncrementSessionsEndedDisconnect(ctx context.Context, serverIP pqtype.Inet) error
	GetSessionsStarted(ctx context.Context, serverIP pqtype.Inet) (int64, error)
	GetSessionsEndedSunk(ctx context.Context, serverIP pqtype.Inet) (int64, error)
	GetSessionsEndedSurrender(ctx context.Context, serverIP pqtype.Inet) (int64, error)
	GetSessionsEndedDisconnect(ctx context.Context, serverIP pqtype.Inet) (int64, error)
}

var _ Querier = (*Queries)(nil)
