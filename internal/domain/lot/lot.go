// Package lot derives the display status of every lot in a development from
// the current proposal set. Status is a pure projection: it is recomputed on
// every load and never persisted, so the store and the view cannot drift.
package lot

import (
	"time"

	"belavista-backend/internal/domain/proposal"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusSold      Status = "sold"
)

const (
	// PreSoldFloor marks lots 1..200 as a pre-sold block when no proposal
	// claims them. A proposal on one of these lots overrides the block:
	// live it projects as reserved, expired it frees the lot to available.
	PreSoldFloor = 200

	stageOneEnd = 100
	stageTwoEnd = 200
)

type Lot struct {
	Number     int                `json:"number"`
	Status     Status             `json:"status"`
	ReservedAt *time.Time         `json:"reserved_at,omitempty"`
	Proposal   *proposal.Proposal `json:"proposal,omitempty"`
}

// Project maps the proposal set onto the fixed inventory of totalLots lots.
// A lot with a non-expired proposal is reserved. A lot whose reservation has
// expired is freed to available, whatever its number; the record itself is
// not deleted. Lots up to PreSoldFloor with no proposal at all are sold, the
// rest available.
func Project(proposals []proposal.Proposal, totalLots int, now time.Time) []Lot {
	byLot := make(map[int]*proposal.Proposal, len(proposals))
	for i := range proposals {
		byLot[proposals[i].Lot] = &proposals[i]
	}

	lots := make([]Lot, totalLots)
	for n := 1; n <= totalLots; n++ {
		l := Lot{Number: n}
		switch p, ok := byLot[n]; {
		case ok && !p.Expired(now):
			reservedAt := p.CreatedAt
			l.Status = StatusReserved
			l.ReservedAt = &reservedAt
			l.Proposal = p
		case ok:
			l.Status = StatusAvailable
		case n <= PreSoldFloor:
			l.Status = StatusSold
		default:
			l.Status = StatusAvailable
		}
		lots[n-1] = l
	}
	return lots
}

// Stage is one of the three fixed presentation bands of the plant view.
// The split carries no status semantics.
type Stage struct {
	Number int   `json:"number"`
	Lots   []Lot `json:"lots"`
}

// Stages partitions a projection into the bands 1-100, 101-200 and 201-end.
func Stages(lots []Lot) []Stage {
	stages := []Stage{{Number: 1}, {Number: 2}, {Number: 3}}
	for _, l := range lots {
		switch {
		case l.Number <= stageOneEnd:
			stages[0].Lots = append(stages[0].Lots, l)
		case l.Number <= stageTwoEnd:
			stages[1].Lots = append(stages[1].Lots, l)
		default:
			stages[2].Lots = append(stages[2].Lots, l)
		}
	}
	return stages
}
