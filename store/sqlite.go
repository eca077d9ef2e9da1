package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS soil_scans (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL,
	crop            TEXT NOT NULL,
	farm_size       REAL NOT NULL,
	soil_values     TEXT NOT NULL,
	all_parameters  TEXT NOT NULL,
	deficiencies    TEXT NOT NULL,
	recommendations TEXT NOT NULL,
	total_cost      REAL NOT NULL DEFAULT 0,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_soil_scans_user_created ON soil_scans(user_id, created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateScan(ctx context.Context, scan *dto.SoilScan) error {
	cols, err := marshalColumns(scan)
	if err != nil {
		return err
	}
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO soil_scans (id, user_id, crop, farm_size, soil_values, all_parameters, deficiencies, recommendations, total_cost, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, scan.UserID, string(scan.Crop), scan.FarmSize,
		cols[0], cols[1], cols[2], cols[3],
		scan.TotalCost, now,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert scan")
	}
	scan.ID = id
	scan.CreatedAt = now
	return nil
}

const scanColumns = `id, user_id, crop, farm_size, soil_values, all_parameters, deficiencies, recommendations, total_cost, created_at`

func (s *SQLiteStore) GetScan(ctx context.Context, userID, id string) (*dto.SoilScan, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+scanColumns+` FROM soil_scans WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	return scanSoilScan(row)
}

func (s *SQLiteStore) ListScans(ctx context.Context, userID string, limit int) ([]dto.SoilScan, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+scanColumns+` FROM soil_scans WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list scans")
	}
	defer rows.Close()

	scans := []dto.SoilScan{}
	for rows.Next() {
		sc, err := scanSoilScan(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, *sc)
	}
	return scans, eris.Wrap(rows.Err(), "sqlite: list scans iterate")
}

func marshalColumns(scan *dto.SoilScan) ([4]string, error) {
	var out [4]string
	for i, v := range []any{scan.SoilValues, scan.AllParameters, scan.Deficiencies, scan.Recommendations} {
		b, err := json.Marshal(v)
		if err != nil {
			return out, eris.Wrap(err, "sqlite: marshal scan")
		}
		out[i] = string(b)
	}
	return out, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSoilScan(row scannable) (*dto.SoilScan, error) {
	var (
		sc                         dto.SoilScan
		crop                       string
		values, params, defs, recs string
	)
	err := row.Scan(&sc.ID, &sc.UserID, &crop, &sc.FarmSize, &values, &params, &defs, &recs, &sc.TotalCost, &sc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan soil scan")
	}
	sc.Crop = dto.Crop(crop)

	for _, col := range []struct {
		raw string
		dst any
	}{
		{values, &sc.SoilValues},
		{params, &sc.AllParameters},
		{defs, &sc.Deficiencies},
		{recs, &sc.Recommendations},
	} {
		if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal scan column")
		}
	}
	sc.CreatedAt = sc.CreatedAt.UTC()
	return &sc, nil
}
