package analytics

import (
	"context"
	"log"
	"net"

	"github.com/sqlc-dev/pqtype"

	"github.com/lrivas/battleship-tcp/db/sqlc"
)

// Postgres is a Recorder backed by db/sqlc.AnalyticsManager, keyed by the
// server's own bind address so a fleet of servers behind a load balancer
// gets one counter row each (teacher's original key, same shape, new
// columns — see db/migration/000001_init.up.sql).
type Postgres struct {
	manager  *sqlc.AnalyticsManager
	serverIP pqtype.Inet
	logger   *log.Logger
}

// NewPostgres builds a Postgres recorder. bindIP is the server's configured
// bind address (spec §5's <bind-ip> argument); a malformed or unspecified
// address degrades to the IPv4 zero address rather than failing startup.
func NewPostgres(manager *sqlc.AnalyticsManager, bindIP string, logger *log.Logger) *Postgres {
	ip := net.ParseIP(bindIP)
	if ip == nil {
		ip = net.IPv4zero
	}
	return &Postgres{
		manager: manager,
		serverIP: pqtype.Inet{
			IPNet: net.IPNet{IP: ip, Mask: net.CIDRMask(32, 32)},
			Valid: true,
		},
		logger: logger,
	}
}

func (p *Postgres) SessionStarted(sessionID int) {
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()
	if err := p.manager.IncrementSessionsStarted(ctx, p.serverIP); err != nil {
		p.logger.Printf("analytics: session %d started: %v", sessionID, err)
	}
}

func (p *Postgres) SessionEnded(sessionID int, cause string) {
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	var err error
	switch cause {
	case "sunk":
		err = p.manager.IncrementSessionsEndedSunk(ctx, p.serverIP)
	case "surrender":
		err = p.manager.IncrementSessionsEndedSurrender(ctx, p.serverIP)
	case "disconnect":
		err = p.manager.IncrementSessionsEndedDisconnect(ctx, p.serverIP)
	default:
		return
	}
	if err != nil {
		p.logger.Printf("analytics: session %d ended (%s): %v", sessionID, cause, err)
	}
}
