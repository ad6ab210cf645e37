package sheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// dialect carries the DDL that differs between SQL drivers. Queries are
// written with '?' and rebound per driver by sqlx.
type dialect struct {
	name string
	ddl  []string
}

var sqliteDialect = dialect{
	name: "sqlite",
	ddl: []string{
		`CREATE TABLE IF NOT EXISTS sheet_headers (
			sheet      TEXT PRIMARY KEY,
			cells      TEXT NOT NULL,
			bold       INTEGER NOT NULL DEFAULT 0,
			widths     TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sheet_rows (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			sheet      TEXT NOT NULL,
			cells      TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS sheet_rows_sheet_idx ON sheet_rows (sheet, id)`,
	},
}

var postgresDialect = dialect{
	name: "postgres",
	ddl: []string{
		`CREATE TABLE IF NOT EXISTS sheet_headers (
			sheet      TEXT PRIMARY KEY,
			cells      TEXT NOT NULL,
			bold       BOOLEAN NOT NULL DEFAULT FALSE,
			widths     TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sheet_rows (
			id         BIGSERIAL PRIMARY KEY,
			sheet      TEXT NOT NULL,
			cells      TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS sheet_rows_sheet_idx ON sheet_rows (sheet, id)`,
	},
}

// SQL is a sheet stored in two tables, one row per sheet row. Cells are kept
// as JSON arrays so the column set can grow without migrations.
type SQL struct {
	db    *sqlx.DB
	sheet string
	now   func() time.Time
}

type headerRecord struct {
	Cells  string `db:"cells"`
	Bold   bool   `db:"bold"`
	Widths string `db:"widths"`
}

func newSQL(ctx context.Context, db *sqlx.DB, d dialect, name string) (*SQL, error) {
	for _, stmt := range d.ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("%s migrate: %w", d.name, err)
		}
	}
	return &SQL{db: db, sheet: name, now: time.Now}, nil
}

func (s *SQL) RowCount(ctx context.Context) (int, error) {
	var n int
	q := s.db.Rebind(`SELECT
		(SELECT COUNT(*) FROM sheet_headers WHERE sheet = ?) +
		(SELECT COUNT(*) FROM sheet_rows WHERE sheet = ?)`)
	if err := s.db.GetContext(ctx, &n, q, s.sheet, s.sheet); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}

func (s *SQL) WriteHeader(ctx context.Context, h Header) error {
	cells, err := json.Marshal(h.Cells)
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}
	widths, err := json.Marshal(h.Widths)
	if err != nil {
		return fmt.Errorf("marshal widths: %w", err)
	}
	q := s.db.Rebind(`INSERT INTO sheet_headers (sheet, cells, bold, widths, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (sheet) DO UPDATE SET
			cells = excluded.cells,
			bold = excluded.bold,
			widths = excluded.widths,
			updated_at = excluded.updated_at`)
	if _, err := s.db.ExecContext(ctx, q, s.sheet, string(cells), h.Bold, string(widths), s.now().UTC()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

func (s *SQL) Header(ctx context.Context) (*Header, error) {
	var rec headerRecord
	q := s.db.Rebind(`SELECT cells, bold, widths FROM sheet_headers WHERE sheet = ?`)
	if err := s.db.GetContext(ctx, &rec, q, s.sheet); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := &Header{Bold: rec.Bold}
	if err := json.Unmarshal([]byte(rec.Cells), &h.Cells); err != nil {
		return nil, fmt.Errorf("decode header cells: %w", err)
	}
	if err := json.Unmarshal([]byte(rec.Widths), &h.Widths); err != nil {
		return nil, fmt.Errorf("decode header widths: %w", err)
	}
	return h, nil
}

func (s *SQL) Append(ctx context.Context, row []string) error {
	cells, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}
	q := s.db.Rebind(`INSERT INTO sheet_rows (sheet, cells, created_at) VALUES (?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, q, s.sheet, string(cells), s.now().UTC()); err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

func (s *SQL) Rows(ctx context.Context) ([][]string, error) {
	var raw []string
	q := s.db.Rebind(`SELECT cells FROM sheet_rows WHERE sheet = ? ORDER BY id ASC`)
	if err := s.db.SelectContext(ctx, &raw, q, s.sheet); err != nil {
		return nil, fmt.Errorf("select rows: %w", err)
	}
	rows := make([][]string, 0, len(raw))
	for _, r := range raw {
		var row []string
		if err := json.Unmarshal([]byte(r), &row); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQL) Close() error {
	return s.db.Close()
}
