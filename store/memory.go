package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

// MemoryStore keeps scans in process memory. Scans are copied in and out so
// callers cannot mutate stored records.
type MemoryStore struct {
	mu    sync.RWMutex
	scans []dto.SoilScan
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Migrate(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) CreateScan(_ context.Context, scan *dto.SoilScan) error {
	scan.ID = uuid.New().String()
	scan.CreatedAt = time.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans = append(m.scans, cloneScan(*scan))
	return nil
}

func (m *MemoryStore) GetScan(_ context.Context, userID, id string) (*dto.SoilScan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, sc := range m.scans {
		if sc.ID == id && sc.UserID == userID {
			out := cloneScan(sc)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListScans(_ context.Context, userID string, limit int) ([]dto.SoilScan, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []dto.SoilScan{}
	for i := len(m.scans) - 1; i >= 0 && len(out) < limit; i-- {
		if m.scans[i].UserID == userID {
			out = append(out, cloneScan(m.scans[i]))
		}
	}
	return out, nil
}

func cloneScan(sc dto.SoilScan) dto.SoilScan {
	sc.AllParameters = append([]dto.SoilParameterRow(nil), sc.AllParameters...)
	for i, r := range sc.AllParameters {
		if r.TestValue != nil {
			v := *r.TestValue
			sc.AllParameters[i].TestValue = &v
		}
	}
	sc.Deficiencies = append([]dto.Deficiency(nil), sc.Deficiencies...)
	sc.Recommendations = append([]dto.Recommendation(nil), sc.Recommendations...)
	return sc
}
