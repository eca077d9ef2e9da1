// Package store persists verified soil scans.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

// ErrNotFound is returned when a scan does not exist for the requesting user.
var ErrNotFound = eris.New("store: scan not found")

// DefaultListLimit caps history reads when the caller gives no limit.
const DefaultListLimit = 50

// Store is the append-only record of a user's scans.
type Store interface {
	// CreateScan assigns ID and CreatedAt and saves the scan.
	CreateScan(ctx context.Context, scan *dto.SoilScan) error
	GetScan(ctx context.Context, userID, id string) (*dto.SoilScan, error)
	// ListScans returns up to limit scans, newest first.
	ListScans(ctx context.Context, userID string, limit int) ([]dto.SoilScan, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open returns the store for driver: "sqlite" at dsn, or "memory".
func Open(driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite", "":
		return NewSQLite(dsn)
	case "memory":
		return NewMemory(), nil
	}
	return nil, eris.Errorf("store: unknown driver %q", driver)
}
