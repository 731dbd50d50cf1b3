package analytics

import (
	"log"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/lrivas/battleship-tcp/db/sqlc"
)

func newTestPostgres(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	queries := sqlc.New(db)
	manager := sqlc.NewAnalyticsManager(queries)
	logger := log.New(os.Stderr, "", 0)
	return NewPostgres(manager, "127.0.0.1", logger), mock
}

func TestPostgresSessionStarted(t *testing.T) {
	p, mock := newTestPostgres(t)
	mock.ExpectExec("INSERT INTO server_analytics").WithArgs(p.serverIP).WillReturnResult(sqlmock.NewResult(0, 1))

	p.SessionStarted(1)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresSessionEndedByCause(t *testing.T) {
	cases := []string{"sunk", "surrender", "disconnect"}
	for _, cause := range cases {
		t.Run(cause, func(t *testing.T) {
			p, mock := newTestPostgres(t)
			mock.ExpectExec("INSERT INTO server_analytics").WithArgs(p.serverIP).WillReturnResult(sqlmock.NewResult(0, 1))

			p.SessionEnded(1, cause)

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestPostgresSessionEndedUnknownCauseIsNoop(t *testing.T) {
	p, mock := newTestPostgres(t)

	p.SessionEnded(1, "bogus")

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
