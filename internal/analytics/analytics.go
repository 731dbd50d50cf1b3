// Package analytics records coarse, non-game-state session counters
// (started / ended-by-cause) to Postgres, grounded in the teacher's
// db/sqlc.AnalyticsManager. It never stores board or fleet data: spec.md's
// Non-goal of no game-state persistence across restarts applies to match
// state, not to these aggregate counters.
package analytics

// Recorder is the session package's dependency on analytics, kept narrow so
// a live match never needs to know whether a database is configured.
type Recorder interface {
	SessionStarted(sessionID int)
	SessionEnded(sessionID int, cause string)
}

// Noop is the default Recorder when no database is configured (spec.md
// scopes persistence out entirely; SPEC_FULL.md's analytics addition is
// optional infrastructure, not a requirement of every deployment).
type Noop struct{}

func (Noop) SessionStarted(int)       {}
func (Noop) SessionEnded(int, string) {}
