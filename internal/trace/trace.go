package trace

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/funvibe/dispatch/internal/dispatch"
)

const schema = `
CREATE TABLE IF NOT EXISTS dispatches (
	id           TEXT PRIMARY KEY,
	routine      TEXT NOT NULL,
	arg_types    TEXT NOT NULL,
	chosen       TEXT,
	candidate_id TEXT,
	outcome      TEXT NOT NULL,
	duration_ns  INTEGER NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_dispatches_routine ON dispatches(routine);
`

// Recorder persists dispatch events to a sqlite database, one row per
// attempt. It implements dispatch.Tracer. Recording is off the dispatch
// hot path unless explicitly installed.
type Recorder struct {
	mu  sync.Mutex
	db  *sql.DB
	ins *sql.Stmt
}

// Open creates or opens a trace database at path (":memory:" works for
// tests).
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	ins, err := db.Prepare(
		`INSERT INTO dispatches (id, routine, arg_types, chosen, candidate_id, outcome, duration_ns, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Recorder{db: db, ins: ins}, nil
}

// Record implements dispatch.Tracer. Insert failures are swallowed:
// tracing must never fail a dispatch.
func (r *Recorder) Record(ev dispatch.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return
	}
	r.ins.Exec(
		uuid.NewString(),
		ev.Routine,
		strings.Join(ev.ArgTypes, ","),
		ev.Chosen,
		ev.CandidateID,
		ev.Outcome,
		ev.Duration.Nanoseconds(),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
}

// RoutineStat summarizes recorded attempts for one routine and outcome.
type RoutineStat struct {
	Routine string
	Outcome string
	Count   int64
	AvgNs   int64
}

// Summary aggregates the trace by routine and outcome, busiest first.
func (r *Recorder) Summary() ([]RoutineStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil, fmt.Errorf("trace recorder is closed")
	}

	rows, err := r.db.Query(
		`SELECT routine, outcome, COUNT(*), CAST(AVG(duration_ns) AS INTEGER)
		 FROM dispatches
		 GROUP BY routine, outcome
		 ORDER BY COUNT(*) DESC, routine, outcome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []RoutineStat
	for rows.Next() {
		var s RoutineStat
		if err := rows.Scan(&s.Routine, &s.Outcome, &s.Count, &s.AvgNs); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Count returns the total number of recorded attempts.
func (r *Recorder) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return 0, fmt.Errorf("trace recorder is closed")
	}
	var n int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM dispatches`).Scan(&n)
	return n, err
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	r.ins.Close()
	err := r.db.Close()
	r.db = nil
	return err
}
