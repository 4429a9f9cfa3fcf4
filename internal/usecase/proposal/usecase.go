package proposal

import (
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	domain "belavista-backend/internal/domain/proposal"
	"belavista-backend/internal/pricing"
	"belavista-backend/pkg/id"
)

// Service owns the proposal lifecycle: reserve, edit, cancel, delete, list.
//
// Reservation carries a known consistency gap: between a broker's read of the
// grid and their submit, another broker may reserve the same lot. There is no
// optimistic lock or unique constraint on lot, so the last writer wins.
// Closing that belongs at the store boundary, not here.
type Service struct {
	repo domain.Repository

	// OnSaved patches the caller's lot view optimistically after a persist;
	// OnChanged triggers a full re-projection. Both are optional.
	OnSaved   func(lot int, p *domain.Proposal)
	OnChanged func()
}

func NewService(repo domain.Repository) *Service { return &Service{repo: repo} }

// Submit validates and persists a draft: insert for a fresh reservation,
// full replace keyed by the existing id in edit mode. Edits may move the
// proposal to another lot. Store failures are surfaced verbatim with no
// retry; the broker resubmits.
func (s *Service) Submit(ctx context.Context, ownerID string, d pricing.Draft) (*domain.Proposal, error) {
	d = pricing.Recompute(d)
	if err := pricing.Validate(d); err != nil {
		return nil, err
	}

	var p *domain.Proposal
	if d.EditID == "" {
		p = d.Proposal(id.NewID32(), ownerID)
		if err := s.repo.Create(ctx, p); err != nil {
			return nil, err
		}
	} else {
		existing, err := s.repo.GetByProposalID(ctx, d.EditID)
		if err != nil {
			return nil, mapNotFound(err)
		}
		if existing.OwnerID != ownerID {
			return nil, domain.ErrNotOwner
		}
		existing.Lot = d.Lot
		existing.Value = d.Value
		existing.ClientData = d.ClientData
		if err := s.repo.Save(ctx, existing); err != nil {
			return nil, err
		}
		p = existing
	}

	if s.OnSaved != nil {
		s.OnSaved(p.Lot, p)
	}
	if s.OnChanged != nil {
		s.OnChanged()
	}
	return p, nil
}

// CancelByLot frees a broker's own reservation on the given lot.
func (s *Service) CancelByLot(ctx context.Context, ownerID string, lotNumber int) error {
	if err := s.repo.DeleteByLotOwner(ctx, lotNumber, ownerID); err != nil {
		return mapNotFound(err)
	}
	if s.OnChanged != nil {
		s.OnChanged()
	}
	return nil
}

// Delete removes a proposal from the saved list by id, owner only.
func (s *Service) Delete(ctx context.Context, ownerID, proposalID string) error {
	existing, err := s.repo.GetByProposalID(ctx, proposalID)
	if err != nil {
		return mapNotFound(err)
	}
	if existing.OwnerID != ownerID {
		return domain.ErrNotOwner
	}
	if err := s.repo.Delete(ctx, proposalID); err != nil {
		return err
	}
	if s.OnChanged != nil {
		s.OnChanged()
	}
	return nil
}

// Get loads one proposal, owner only.
func (s *Service) Get(ctx context.Context, ownerID, proposalID string) (*domain.Proposal, error) {
	p, err := s.repo.GetByProposalID(ctx, proposalID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if p.OwnerID != ownerID {
		return nil, domain.ErrNotOwner
	}
	return p, nil
}

// ListSaved returns the broker's own proposals, newest first, optionally
// filtered by buyer name (case-insensitive) or tax id substring.
func (s *Service) ListSaved(ctx context.Context, ownerID, query string) ([]domain.Proposal, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Proposal, 0, len(all))
	for _, p := range all {
		if p.OwnerID != ownerID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.ClientData.Name), query) &&
			!strings.Contains(p.ClientData.TaxID, query) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
