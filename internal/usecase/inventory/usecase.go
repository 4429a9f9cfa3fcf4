package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"belavista-backend/internal/domain/lot"
	domain "belavista-backend/internal/domain/proposal"
)

// ErrDataUnavailable means the proposal fetch failed and no earlier
// projection exists to fall back on.
var ErrDataUnavailable = errors.New("lot inventory unavailable")

// Grid is one projection of the whole development, partitioned into the
// three display stages.
type Grid struct {
	Lots     []lot.Lot   `json:"lots"`
	Stages   []lot.Stage `json:"stages"`
	LoadedAt time.Time   `json:"loaded_at"`
	// Stale marks a projection served from the last successful load after a
	// read failure. The view degrades instead of blanking.
	Stale bool `json:"stale"`
}

// Service projects the lot grid on demand. It keeps only the last good
// projection, used to degrade gracefully when the store is unreachable.
type Service struct {
	repo      domain.Repository
	totalLots int

	mu   sync.Mutex
	last *Grid
}

func NewService(repo domain.Repository, totalLots int) *Service {
	return &Service{repo: repo, totalLots: totalLots}
}

// Load fetches all proposals and projects them. On a fetch failure the last
// good projection is returned marked stale; with nothing to fall back on the
// error wraps ErrDataUnavailable. The returned grid is always a snapshot:
// Patch writes to the cached slice, never to one a caller holds.
func (s *Service) Load(ctx context.Context) (*Grid, error) {
	proposals, err := s.repo.ListAll(ctx)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.last != nil {
			return s.snapshotLocked(true), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	lots := lot.Project(proposals, s.totalLots, time.Now().UTC())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &Grid{
		Lots:     lots,
		Stages:   lot.Stages(lots),
		LoadedAt: time.Now().UTC(),
	}
	return s.snapshotLocked(false), nil
}

// snapshotLocked copies the cached lots and rebuilds the stages over the
// copy. Caller holds mu.
func (s *Service) snapshotLocked(stale bool) *Grid {
	lots := make([]lot.Lot, len(s.last.Lots))
	copy(lots, s.last.Lots)
	return &Grid{
		Lots:     lots,
		Stages:   lot.Stages(lots),
		LoadedAt: s.last.LoadedAt,
		Stale:    stale,
	}
}

// Patch optimistically marks one lot reserved in the cached projection after
// a successful submit, so a stale fallback already shows the reservation.
func (s *Service) Patch(lotNumber int, p *domain.Proposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil || lotNumber < 1 || lotNumber > len(s.last.Lots) {
		return
	}
	reservedAt := p.CreatedAt
	l := lot.Lot{
		Number:     lotNumber,
		Status:     lot.StatusReserved,
		ReservedAt: &reservedAt,
		Proposal:   p,
	}
	s.last.Lots[lotNumber-1] = l
	s.last.Stages = lot.Stages(s.last.Lots)
}

// Refresh rebuilds the projection from the store. It is the full
// re-projection hook run after any proposal mutation; a failure here leaves
// the previous projection in place.
func (s *Service) Refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = s.Load(ctx)
}
