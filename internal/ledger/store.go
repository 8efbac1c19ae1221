// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records which papers received DOI metadata and when their
// files were published. SQLite is the default backend; Postgres serves
// shared deployments.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// ErrNotFound is returned when no row matches a submission ID.
var ErrNotFound = errors.New("publication not found")

// Store manages the publication ledger.
type Store struct {
	db     *sql.DB
	driver types.LedgerDriver
	now    func() time.Time
}

// Open opens or creates the ledger selected by cfg and creates the schema
// if it does not exist.
func Open(cfg types.LedgerConfig) (*Store, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case types.LedgerSQLite, "":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
		db, err = sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
		cfg.Driver = types.LedgerSQLite
	case types.LedgerPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("ledger driver postgres requires a DSN")
		}
		db, err = sql.Open("pgx", cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown ledger driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db, driver: cfg.Driver, now: time.Now}
	if err := s.createSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewRunID returns a fresh pipeline run identifier.
func NewRunID() string {
	return uuid.NewString()
}

func (s *Store) createSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS publications (
			id INTEGER PRIMARY KEY,
			doi TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			landing_url TEXT NOT NULL,
			pdf_url TEXT NOT NULL,
			pdf_sha256 TEXT NOT NULL DEFAULT '',
			xml_path TEXT NOT NULL,
			run_id TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			published_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_run_id ON publications(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// rebind rewrites "?" placeholders as "$n" for Postgres.
func (s *Store) rebind(query string) string {
	if s.driver != types.LedgerPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Record inserts or updates the row of p.ID. RecordedAt defaults to now. A
// changed PDF digest clears PublishedAt so the paper is uploaded again.
func (s *Store) Record(ctx context.Context, p types.Publication) error {
	if p.RecordedAt.IsZero() {
		p.RecordedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO publications (id, doi, title, landing_url, pdf_url, pdf_sha256, xml_path, run_id, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			doi=excluded.doi, title=excluded.title, landing_url=excluded.landing_url,
			pdf_url=excluded.pdf_url, xml_path=excluded.xml_path, run_id=excluded.run_id,
			recorded_at=excluded.recorded_at,
			published_at=CASE WHEN publications.pdf_sha256 = excluded.pdf_sha256
				THEN publications.published_at ELSE NULL END,
			pdf_sha256=excluded.pdf_sha256`),
		p.ID, p.DOI, p.Title, p.LandingURL, p.PDFURL, p.PDFSHA256, p.XMLPath, p.RunID,
		formatTime(p.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("recording p%d: %w", p.ID, err)
	}
	return nil
}

// MarkPublished sets the publication time of a row.
func (s *Store) MarkPublished(ctx context.Context, id int, at time.Time) error {
	res, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE publications SET published_at = ? WHERE id = ?`), formatTime(at), id)
	if err != nil {
		return fmt.Errorf("marking p%d published: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking p%d published: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("p%d: %w", id, ErrNotFound)
	}
	return nil
}

const selectColumns = `SELECT id, doi, title, landing_url, pdf_url, pdf_sha256, xml_path, run_id, recorded_at, published_at FROM publications`

// Get returns the row of a submission.
func (s *Store) Get(ctx context.Context, id int) (types.Publication, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(selectColumns+` WHERE id = ?`), id)
	p, err := scanPublication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Publication{}, fmt.Errorf("p%d: %w", id, ErrNotFound)
	}
	return p, err
}

// ListOptions filters List.
type ListOptions struct {
	// Unpublished keeps rows never uploaded, or changed since.
	Unpublished bool

	// RunID keeps rows written by one run.
	RunID string
}

// List returns rows ordered by submission ID.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Publication, error) {
	var (
		where []string
		args  []any
	)
	if opts.Unpublished {
		where = append(where, "published_at IS NULL")
	}
	if opts.RunID != "" {
		where = append(where, "run_id = ?")
		args = append(args, opts.RunID)
	}
	query := selectColumns
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("listing publications: %w", err)
	}
	defer rows.Close()

	out := []types.Publication{}
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing publications: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPublication(sc scanner) (types.Publication, error) {
	var (
		p         types.Publication
		recorded  string
		published sql.NullString
	)
	if err := sc.Scan(&p.ID, &p.DOI, &p.Title, &p.LandingURL, &p.PDFURL, &p.PDFSHA256,
		&p.XMLPath, &p.RunID, &recorded, &published); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scanning publication: %w", err)
	}
	var err error
	if p.RecordedAt, err = parseTime(recorded); err != nil {
		return p, err
	}
	if published.Valid {
		if p.PublishedAt, err = parseTime(published.String); err != nil {
			return p, err
		}
	}
	return p, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
