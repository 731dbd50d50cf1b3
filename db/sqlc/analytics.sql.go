package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

const upsertIncrementSessionsStarted = `
INSERT INTO server_analytics (server_ip, sessions_started)
VALUES ($1, 1)
ON CONFLICT (server_ip) DO UPDATE
SET sessions_started = server_analytics.sessions_started + 1
`

const upsertIncrementSessionsEndedSunk = `
INSERT INTO server_analytics (server_ip, sessions_ended_sunk)
VALUES ($1, 1)
ON CONFLICT (server_ip) DO UPDATE
SET sessions_ended_sunk = server_analytics.sessions_ended_sunk + 1
`

const upsertIncrementSessionsEndedSurrender = `
INSERT INTO server_analytics (server_ip, sessions_ended_surrender)
VALUES ($1, 1)
ON CONFLICT (server_ip) DO UPDATE
SET sessions_ended_surrender = server_analytics.sessions_ended_surrender + 1
`

const upsertIncrementSessionsEndedDisconnect = `
INSERT INTO server_analytics (server_ip, sessions_ended_disconnect)
VALUES ($1, 1)
ON CONFLICT (server_ip) DO UPDATE
SET sessions_ended_disconnect = server_analytics.sessions_ended_disconnect + 1
`

const selectSessionsStarted = `SELECT sessions_started FROM server_analytics WHERE server_ip = $1`
const selectSessionsEndedSunk = `SELECT sessions_ended_sunk FROM server_analytics WHERE server_ip = $1`
const selectSessionsEndedSurrender = `SELECT sessions_ended_surrender FROM server_analytics WHERE server_ip = $1`
const selectSessionsEndedDisconnect = `SELECT sessions_ended_disconnect FROM server_analytics WHERE server_ip = $1`

func (q *Queries) IncrementSessionsStarted(ctx context.Context, serverIP pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, upsertIncrementSessionsStarted, serverIP)
	return err
}

func (q *Queries) IncrementSessionsEndedSunk(ctx context.Context, serverIP pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, upsertIncrementSessionsEndedSunk, serverIP)
	return err
}

func (q *Queries) IncrementSessionsEndedSurrender(ctx context.Context, serverIP pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, upsertIncrementSessionsEndedSurrender, serverIP)
	return err
}

func (q *Queries) IncrementSessionsEndedDisconnect(ctx context.Context, serverIP pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, upsertIncrementSessionsEndedDisconnect, serverIP)
	return err
}

func (q *Queries) GetSessionsStarted(ctx context.Context, serverIP pqtype.Inet) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, selectSessionsStarted, serverIP).Scan(&count)
	return count, err
}

func (q *Queries) GetSessionsEndedSunk(ctx context.Context, serverIP pqtype.Inet) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, selectSessionsEndedSunk, serverIP).Scan(&count)
	return count, err
}

func (q *Queries) GetSessionsEndedSurrender(ctx context.Context, serverIP pqtype.Inet) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, selectSessionsEndedSurrender, serverIP).Scan(&count)
	return count, err
}

func (q *Queries) GetSessionsEndedDisconnect(ctx context.Context, serverIP pqtype.Inet) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, selectSessionsEndedDisconnect, serverIP).Scan(&count)
	return count, err
}
