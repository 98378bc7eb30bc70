package spool

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/odhalyxz/multi-model-server/pkg/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS metrics (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT    NOT NULL,
	unit        TEXT    NOT NULL,
	value       TEXT    NOT NULL,
	is_numeric  INTEGER NOT NULL,
	request_id  TEXT    NOT NULL DEFAULT '',
	dimensions  TEXT    NOT NULL,
	recorded_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_metrics_recorded_at ON metrics(recorded_at);
`

// Record is one spooled metric row.
type Record struct {
	ID         int64
	Name       string
	Unit       string
	Value      any
	RequestID  string
	Dimensions []metrics.Dimension
	RecordedAt time.Time
}

// Spool is a SQLite-backed append log of emitted metrics.
type Spool struct {
	db  *sql.DB
	now func() time.Time

	appendStmt *sql.Stmt
	recentStmt *sql.Stmt
	pruneStmt  *sql.Stmt
}

// Open opens (or creates) a spool database at path.
func Open(path string) (*Spool, error) {
	if path == "" {
		return nil, fmt.Errorf("spool path cannot be empty")
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open spool %q: %w", path, err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create spool schema: %w", err)
	}

	s := &Spool{db: db, now: time.Now}
	if err := s.prepare(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Spool) prepare() error {
	var err error
	s.appendStmt, err = s.db.Prepare(
		`INSERT INTO metrics (name, unit, value, is_numeric, request_id, dimensions, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare append: %w", err)
	}
	s.recentStmt, err = s.db.Prepare(
		`SELECT id, name, unit, value, is_numeric, request_id, dimensions, recorded_at
		 FROM metrics ORDER BY id DESC LIMIT ?`)
	if err != nil {
		return fmt.Errorf("prepare recent: %w", err)
	}
	s.pruneStmt, err = s.db.Prepare(`DELETE FROM metrics WHERE recorded_at < ?`)
	if err != nil {
		return fmt.Errorf("prepare prune: %w", err)
	}
	return nil
}

// Append spools a batch of metrics in one transaction.
func (s *Spool) Append(ctx context.Context, ms []*metrics.Metric) error {
	if len(ms) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin spool append: %w", err)
	}
	defer tx.Rollback()

	stmt := tx.StmtContext(ctx, s.appendStmt)
	recordedAt := s.now().Unix()
	for _, m := range ms {
		dims, err := json.Marshal(m.Dimensions)
		if err != nil {
			return fmt.Errorf("encode dimensions for %q: %w", m.Name, err)
		}

		value, numeric := encodeValue(m.Value)
		if _, err := stmt.ExecContext(ctx, m.Name, m.Unit, value, numeric, m.RequestID, string(dims), recordedAt); err != nil {
			return fmt.Errorf("spool metric %q: %w", m.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit spool append: %w", err)
	}
	return nil
}

// Recent returns up to limit rows, newest first.
func (s *Spool) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.recentStmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query spool: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r          Record
			value      string
			numeric    bool
			dims       string
			recordedAt int64
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Unit, &value, &numeric, &r.RequestID, &dims, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan spool row: %w", err)
		}
		r.Value = decodeValue(value, numeric)
		r.RecordedAt = time.Unix(recordedAt, 0)
		if err := json.Unmarshal([]byte(dims), &r.Dimensions); err != nil {
			return nil, fmt.Errorf("decode dimensions for row %d: %w", r.ID, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Prune deletes rows recorded before the cutoff and reports how many
// were removed.
func (s *Spool) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.pruneStmt.ExecContext(ctx, olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune spool: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the database handle.
func (s *Spool) Close() error {
	for _, stmt := range []*sql.Stmt{s.appendStmt, s.recentStmt, s.pruneStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}

func encodeValue(v any) (string, bool) {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64), true
	}
	return fmt.Sprint(v), false
}

func decodeValue(s string, numeric bool) any {
	if numeric {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
