package service

import (
	"context"
	"sync"
	"testing"

	"awardcheck-backend/models"
	"awardcheck-backend/repository"

	"github.com/stretchr/testify/require"
)

// fakeOracle records requests and answers with judge, or a fixed judgment
type fakeOracle struct {
	mu       sync.Mutex
	requests []JudgmentRequest
	judge    func(ctx context.Context, req JudgmentRequest) (*Judgment, error)
}

func (f *fakeOracle) Judge(ctx context.Context, req JudgmentRequest) (*Judgment, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.judge(ctx, req)
}

func (f *fakeOracle) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func fixedOracle(score float64, duplicate bool, reasoning string) *fakeOracle {
	return &fakeOracle{judge: func(context.Context, JudgmentRequest) (*Judgment, error) {
		return &Judgment{SimilarityScore: score, IsDuplicate: duplicate, Reasoning: reasoning}, nil
	}}
}

func newDefaultStore(t *testing.T) *repository.MemoryRecordStore {
	t.Helper()
	store, err := repository.NewMemoryRecordStore(repository.DefaultSeed())
	require.NoError(t, err)
	return store
}

func qty(v float64) *float64 { return &v }

func text(s string) *string { return &s }

func proposal(site, project string, items ...models.LineItemEntry) *models.AwardProposal {
	return &models.AwardProposal{SiteID: site, ProjectRefID: project, LineItems: items}
}

func fixedItem(id string, q float64) models.LineItemEntry {
	return models.LineItemEntry{LineItemID: id, Quantity: qty(q)}
}

func variableItem(id, details string) models.LineItemEntry {
	return models.LineItemEntry{LineItemID: id, Details: text(details)}
}
