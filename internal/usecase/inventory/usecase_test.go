package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"belavista-backend/internal/domain/lot"
	domain "belavista-backend/internal/domain/proposal"
	"belavista-backend/internal/testutil/proposalmock"
)

func TestLoad_ProjectsProposals(t *testing.T) {
	createdAt := time.Now().UTC().Add(-time.Hour)
	repo := &proposalmock.Repo{
		ListAllFn: func(ctx context.Context) ([]domain.Proposal, error) {
			return []domain.Proposal{{
				ProposalID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
				Lot:        201,
				OwnerID:    "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
				CreatedAt:  createdAt,
			}}, nil
		},
	}
	svc := NewService(repo, 350)

	g, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(g.Lots) != 350 || len(g.Stages) != 3 {
		t.Fatalf("grid shape: %d lots, %d stages", len(g.Lots), len(g.Stages))
	}
	if g.Stale {
		t.Fatalf("fresh load must not be stale")
	}
	if g.Lots[200].Status != lot.StatusReserved {
		t.Fatalf("lot 201 = %s, want reserved", g.Lots[200].Status)
	}
	if g.Lots[0].Status != lot.StatusSold {
		t.Fatalf("lot 1 = %s, want sold", g.Lots[0].Status)
	}
}

func TestLoad_StaleFallback(t *testing.T) {
	healthy := true
	repo := &proposalmock.Repo{
		ListAllFn: func(ctx context.Context) ([]domain.Proposal, error) {
			if !healthy {
				return nil, errors.New("connection refused")
			}
			return nil, nil
		},
	}
	svc := NewService(repo, 350)

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}

	healthy = false
	g, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("degraded load: %v", err)
	}
	if !g.Stale {
		t.Fatalf("fallback grid must be marked stale")
	}
	if len(g.Lots) != 350 {
		t.Fatalf("fallback grid lost lots: %d", len(g.Lots))
	}
}

func TestLoad_NoCacheNoData(t *testing.T) {
	repo := &proposalmock.Repo{
		ListAllFn: func(ctx context.Context) ([]domain.Proposal, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewService(repo, 350)

	if _, err := svc.Load(context.Background()); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestPatch_MarksLotReservedInCache(t *testing.T) {
	repo := &proposalmock.Repo{
		ListAllFn: func(ctx context.Context) ([]domain.Proposal, error) { return nil, nil },
	}
	svc := NewService(repo, 350)
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	p := &domain.Proposal{
		ProposalID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Lot:        42,
		CreatedAt:  time.Now().UTC(),
	}
	svc.Patch(42, p)

	// patched state must survive into the stale fallback path
	repo.ListAllFn = func(ctx context.Context) ([]domain.Proposal, error) {
		return nil, errors.New("connection refused")
	}
	g, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("degraded load: %v", err)
	}
	if g.Lots[41].Status != lot.StatusReserved || g.Lots[41].Proposal == nil {
		t.Fatalf("patch not visible: %+v", g.Lots[41])
	}
	if g.Stages[0].Lots[41].Status != lot.StatusReserved {
		t.Fatalf("stages not rebuilt after patch")
	}
}

func TestPatch_IgnoresOutOfRangeAndColdCache(t *testing.T) {
	repo := &proposalmock.Repo{
		ListAllFn: func(ctx context.Context) ([]domain.Proposal, error) { return nil, nil },
	}
	svc := NewService(repo, 350)

	// no projection loaded yet, must not panic
	svc.Patch(42, &domain.Proposal{Lot: 42})

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	svc.Patch(0, &domain.Proposal{})
	svc.Patch(351, &domain.Proposal{})
}

func TestLoad_ReturnsSnapshotNotCache(t *testing.T) {
	repo := &proposalmock.Repo{
		ListAllFn: func(ctx context.Context) ([]domain.Proposal, error) { return nil, nil },
	}
	svc := NewService(repo, 350)

	g, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	svc.Patch(42, &domain.Proposal{
		ProposalID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Lot:        42,
		CreatedAt:  time.Now().UTC(),
	})

	// the grid handed out before the patch is untouched
	if g.Lots[41].Status != lot.StatusAvailable {
		t.Fatalf("caller's grid mutated by Patch: %+v", g.Lots[41])
	}
	if g.Stages[0].Lots[41].Status != lot.StatusAvailable {
		t.Fatalf("caller's stages mutated by Patch")
	}

	// the stale fallback carries its own copy too
	repo.ListAllFn = func(ctx context.Context) ([]domain.Proposal, error) {
		return nil, errors.New("connection refused")
	}
	s1, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("degraded load: %v", err)
	}
	svc.Patch(43, &domain.Proposal{Lot: 43, CreatedAt: time.Now().UTC()})
	if s1.Lots[42].Status != lot.StatusAvailable {
		t.Fatalf("stale grid mutated by Patch: %+v", s1.Lots[42])
	}
}

func TestPatch_ConcurrentWithGridReaders(t *testing.T) {
	repo := &proposalmock.Repo{
		ListAllFn: func(ctx context.Context) ([]domain.Proposal, error) { return nil, nil },
	}
	svc := NewService(repo, 350)

	g, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if g.Lots[41].Status == lot.StatusSold {
				t.Errorf("lot 42 projected sold")
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		p := &domain.Proposal{
			ProposalID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			Lot:        42,
			CreatedAt:  time.Now().UTC(),
		}
		for i := 0; i < 1000; i++ {
			svc.Patch(42, p)
		}
	}()
	wg.Wait()
}

func TestRefresh_RebuildsProjection(t *testing.T) {
	var listed []domain.Proposal
	repo := &proposalmock.Repo{
		ListAllFn: func(ctx context.Context) ([]domain.Proposal, error) { return listed, nil },
	}
	svc := NewService(repo, 350)
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	listed = []domain.Proposal{{
		ProposalID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Lot:        300,
		CreatedAt:  time.Now().UTC(),
	}}
	svc.Refresh()

	g, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Lots[299].Status != lot.StatusReserved {
		t.Fatalf("refresh did not pick up new proposal: %s", g.Lots[299].Status)
	}
}
