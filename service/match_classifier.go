package service

import (
	"context"

	"awardcheck-backend/models"
	"awardcheck-backend/repository"
)

// Overlap groups a proposed entry with the awarded contracts that already carry it
type Overlap struct {
	Entry      models.LineItemEntry
	Position   int                        // index of Entry in the proposal
	Definition *models.LineItemDefinition // nil when no definition exists
	Candidates []*models.ContractRecord
}

// MatchKind reports how the overlap should be judged, or "" without a definition
func (o Overlap) MatchKind() models.MatchKind {
	if o.Definition == nil {
		return ""
	}
	if o.Definition.IsFixed() {
		return models.MatchKindExact
	}
	return models.MatchKindSemantic
}

// MatchClassifier finds proposed line items already covered by awarded contracts
type MatchClassifier struct {
	store repository.RecordStore
}

// NewMatchClassifier creates a classifier over a record store
func NewMatchClassifier(store repository.RecordStore) *MatchClassifier {
	return &MatchClassifier{store: store}
}

// FindOverlaps returns one Overlap per proposed entry that has candidates, in proposal order
func (m *MatchClassifier) FindOverlaps(ctx context.Context, proposal *models.AwardProposal) ([]Overlap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if proposal == nil || !proposal.Valid() {
		return nil, ErrInvalidProposal
	}
	proposal = proposal.Normalized()
	if len(proposal.LineItems) == 0 {
		return nil, nil
	}

	contracts := m.store.FindAwardedContracts(proposal.SiteID, proposal.ProjectRefID, proposal.LineItemIDs())
	if len(contracts) == 0 {
		return nil, nil
	}

	var overlaps []Overlap
	for i, entry := range proposal.LineItems {
		var candidates []*models.ContractRecord
		for _, contract := range contracts {
			if contract.HasLineItem(entry.LineItemID) {
				candidates = append(candidates, contract)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		// a missing definition leaves Definition nil; the pipeline skips it
		def, _ := m.store.GetLineItemDefinition(entry.LineItemID)

		overlaps = append(overlaps, Overlap{
			Entry:      entry,
			Position:   i,
			Definition: def,
			Candidates: candidates,
		})
	}

	return overlaps, nil
}
