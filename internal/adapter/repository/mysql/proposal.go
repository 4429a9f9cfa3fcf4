package mysql

import (
	"context"

	"gorm.io/gorm"

	proposalDomain "belavista-backend/internal/domain/proposal"
)

type ProposalRepository struct{ db *gorm.DB }

func NewProposalRepository(db *gorm.DB) *ProposalRepository { return &ProposalRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *ProposalRepository) Tx(ctx context.Context, fn func(repo proposalDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ProposalRepository{db: tx})
	})
}

func (r *ProposalRepository) ListAll(ctx context.Context) ([]proposalDomain.Proposal, error) {
	var out []proposalDomain.Proposal
	res := r.db.WithContext(ctx).Order("id DESC").Find(&out)
	return out, res.Error
}

func (r *ProposalRepository) GetByProposalID(ctx context.Context, proposalID string) (*proposalDomain.Proposal, error) {
	var out proposalDomain.Proposal
	res := r.db.WithContext(ctx).Where("proposal_id = ?", proposalID).First(&out)
	return &out, res.Error
}

func (r *ProposalRepository) GetByLot(ctx context.Context, lot int) (*proposalDomain.Proposal, error) {
	var out proposalDomain.Proposal
	res := r.db.WithContext(ctx).
		Where("lot = ?", lot).
		Order("created_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *ProposalRepository) Create(ctx context.Context, p *proposalDomain.Proposal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProposalRepository) Save(ctx context.Context, p *proposalDomain.Proposal) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProposalRepository) Delete(ctx context.Context, proposalID string) error {
	res := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Delete(&proposalDomain.Proposal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProposalRepository) DeleteByLotOwner(ctx context.Context, lot int, ownerID string) error {
	res := r.db.WithContext(ctx).
		Where("lot = ? AND user_id = ?", lot, ownerID).
		Delete(&proposalDomain.Proposal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
