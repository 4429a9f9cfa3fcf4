package proposal

import "context"

type Repository interface {
	ListAll(ctx context.Context) ([]Proposal, error)
	GetByProposalID(ctx context.Context, proposalID string) (*Proposal, error)
	GetByLot(ctx context.Context, lot int) (*Proposal, error)
	Create(ctx context.Context, p *Proposal) error
	Save(ctx context.Context, p *Proposal) error
	Delete(ctx context.Context, proposalID string) error
	DeleteByLotOwner(ctx context.Context, lot int, ownerID string) error
}
