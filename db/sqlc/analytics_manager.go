package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager is the thin, panic-free wrapper over Querier that the
// rest of the server depends on, so swapping the underlying Queries for a
// mock in tests needs no other change.
type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) IncrementSessionsStarted(ctx context.Context, serverIP pqtype.Inet) error {
	return a.queries.IncrementSessionsStarted(ctx, serverIP)
}

func (a *AnalyticsManager) IncrementSessionsEndedSunk(ctx context.Context, serverIP pqtype.Inet) error {
	return a.queries.IncrementSessionsEndedSunk(ctx, serverIP)
}

func (a *AnalyticsManager) IncrementSessionsEndedSurrender(ctx context.Context, serverIP pqtype.Inet) error {
	return a.queries.IncrementSessionsEndedSurrender(ctx, serverIP)
}

func (a *AnalyticsManager) IncrementSessionsEndedDisconnect(ctx context.Context, serverIP pqtype.Inet) error {
	return a.queries.IncrementSessionsEndedDisconnect(ctx, serverIP)
}

func (a *AnalyticsManager) GetSessionsStarted(ctx context.Context, serverIP pqtype.Inet) (int64, error) {
	return a.queries.GetSessionsStarted(ctx, serverIP)
}

func (a *AnalyticsManager) GetSessionsEndedSunk(ctx context.Context, serverIP pqtype.Inet) (int64, error) {
	return a.queries.GetSessionsEndedSunk(ctx, serverIP)
}

func (a *AnalyticsManager) GetSessionsEndedSurrender(ctx context.Context, serverIP pqtype.Inet) (int64, error) {
	return a.queries.GetSessionsEndedSurrender(ctx, serverIP)
}

func (a *AnalyticsManager) GetSessionsEndedDisconnect(ctx context.Context, serverIP pqtype.Inet) (int64, error) {
	return a.queries.GetSessionsEndedDisconnect(ctx, serverIP)
}
