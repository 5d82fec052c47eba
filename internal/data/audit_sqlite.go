package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
	"github.com/kudobolivia/frontdesk/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// sqliteAuditRepo implements the audit repository on a local SQLite file
type sqliteAuditRepo struct {
	db *sql.DB
}

// NewSQLiteAuditRepo creates a SQLite audit repository
func NewSQLiteAuditRepo(dbPath string) (repo.AuditRepo, error) {
	return newSQLiteAuditRepo(dbPath)
}

func newSQLiteAuditRepo(dbPath string) (*sqliteAuditRepo, error) {
	// Ensure directory exists
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One table per log, mirroring the two worksheets
	for _, table := range []string{escalationTable, interestTable} {
		_, err = db.Exec(fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				sender TEXT NOT NULL,
				text TEXT NOT NULL,
				created_at TEXT NOT NULL
			)
		`, table))
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}

	return &sqliteAuditRepo{db: db}, nil
}

const (
	escalationTable = "escalations"
	interestTable   = "interests"
)

// AppendEscalation records a human-handoff request
func (r *sqliteAuditRepo) AppendEscalation(ctx context.Context, rec domain.AuditRecord) error {
	return r.insert(ctx, escalationTable, rec)
}

// AppendInterest records an inquiry answered by the generative responder
func (r *sqliteAuditRepo) AppendInterest(ctx context.Context, rec domain.AuditRecord) error {
	return r.insert(ctx, interestTable, rec)
}

func (r *sqliteAuditRepo) insert(ctx context.Context, table string, rec domain.AuditRecord) error {
	row := rec.Row()
	_, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (sender, text, created_at) VALUES (?, ?, ?)`, table),
		row[0], row[1], row[2],
	)
	if err != nil {
		return fmt.Errorf("failed to append %s row: %w", table, err)
	}
	return nil
}

// rows lists a table in insertion order
func (r *sqliteAuditRepo) rows(ctx context.Context, table string) ([][]string, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT sender, text, created_at FROM %s ORDER BY id`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var sender, text, createdAt string
		if err := rows.Scan(&sender, &text, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		out = append(out, []string{sender, text, createdAt})
	}
	return out, rows.Err()
}

// Close closes the database connection
func (r *sqliteAuditRepo) Close() error {
	return r.db.Close()
}
