package proposalmock

import (
	"context"

	domain "belavista-backend/internal/domain/proposal"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	ListAllFn          func(ctx context.Context) ([]domain.Proposal, error)
	GetByProposalIDFn  func(ctx context.Context, proposalID string) (*domain.Proposal, error)
	GetByLotFn         func(ctx context.Context, lot int) (*domain.Proposal, error)
	CreateFn           func(ctx context.Context, p *domain.Proposal) error
	SaveFn             func(ctx context.Context, p *domain.Proposal) error
	DeleteFn           func(ctx context.Context, proposalID string) error
	DeleteByLotOwnerFn func(ctx context.Context, lot int, ownerID string) error
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Proposal, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) GetByProposalID(ctx context.Context, proposalID string) (*domain.Proposal, error) {
	if m.GetByProposalIDFn != nil {
		return m.GetByProposalIDFn(ctx, proposalID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLot(ctx context.Context, lot int) (*domain.Proposal, error) {
	if m.GetByLotFn != nil {
		return m.GetByLotFn(ctx, lot)
	}
	return nil, context.Canceled
}

func (m *Repo) Create(ctx context.Context, p *domain.Proposal) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Proposal) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, proposalID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, proposalID)
	}
	return nil
}

func (m *Repo) DeleteByLotOwner(ctx context.Context, lot int, ownerID string) error {
	if m.DeleteByLotOwnerFn != nil {
		return m.DeleteByLotOwnerFn(ctx, lot, ownerID)
	}
	return nil
}
