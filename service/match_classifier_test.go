package service

import (
	"context"
	"errors"
	"testing"

	"awardcheck-backend/models"
	"awardcheck-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOverlapsExactItem(t *testing.T) {
	classifier := NewMatchClassifier(newDefaultStore(t))

	overlaps, err := classifier.FindOverlaps(context.Background(),
		proposal("site-001", "por-001", fixedItem("line-002", 1)))
	require.NoError(t, err)
	require.Len(t, overlaps, 1)

	assert.Equal(t, models.MatchKindExact, overlaps[0].MatchKind())
	require.Len(t, overlaps[0].Candidates, 1)
	assert.Equal(t, "contract-001", overlaps[0].Candidates[0].ID)
}

func TestFindOverlapsKeepsProposalOrder(t *testing.T) {
	classifier := NewMatchClassifier(newDefaultStore(t))

	overlaps, err := classifier.FindOverlaps(context.Background(), proposal("site-001", "por-001",
		variableItem("line-004", "labor"),
		fixedItem("line-999", 1),
		fixedItem("line-001", 10),
		variableItem("line-003", "survey"),
	))
	require.NoError(t, err)
	require.Len(t, overlaps, 3)

	assert.Equal(t, "line-004", overlaps[0].Entry.LineItemID)
	assert.Equal(t, 0, overlaps[0].Position)
	assert.Equal(t, "line-001", overlaps[1].Entry.LineItemID)
	assert.Equal(t, 2, overlaps[1].Position)
	assert.Equal(t, "line-003", overlaps[2].Entry.LineItemID)

	assert.Len(t, overlaps[1].Candidates, 2, "fixed item appears on two awarded contracts")
	assert.Equal(t, models.MatchKindSemantic, overlaps[2].MatchKind())
}

func TestFindOverlapsEmptyProposal(t *testing.T) {
	classifier := NewMatchClassifier(newDefaultStore(t))

	overlaps, err := classifier.FindOverlaps(context.Background(), proposal("site-001", "por-001"))
	require.NoError(t, err)
	assert.Empty(t, overlaps)
}

func TestFindOverlapsRejectsMissingIdentifiers(t *testing.T) {
	classifier := NewMatchClassifier(newDefaultStore(t))

	_, err := classifier.FindOverlaps(context.Background(), proposal("", "por-001", fixedItem("line-001", 1)))
	assert.True(t, errors.Is(err, ErrInvalidProposal))

	_, err = classifier.FindOverlaps(context.Background(), proposal("site-001", "  ", fixedItem("line-001", 1)))
	assert.True(t, errors.Is(err, ErrInvalidProposal))

	_, err = classifier.FindOverlaps(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrInvalidProposal))
}

func TestFindOverlapsMissingDefinition(t *testing.T) {
	seed := &repository.Seed{
		Contracts: []models.ContractRecord{{
			ID: "c-1", ContractNumber: "CN-1", SiteID: "s", ProjectRefID: "p",
			Status:    models.ContractStatusAwarded,
			LineItems: []models.LineItemEntry{{LineItemID: "ghost"}},
		}},
	}
	store, err := repository.NewMemoryRecordStore(seed)
	require.NoError(t, err)

	overlaps, err := NewMatchClassifier(store).FindOverlaps(context.Background(),
		proposal("s", "p", fixedItem("ghost", 1)))
	require.NoError(t, err)
	require.Len(t, overlaps, 1)
	assert.Nil(t, overlaps[0].Definition)
	assert.Equal(t, models.MatchKind(""), overlaps[0].MatchKind())
}

func TestFindOverlapsTrimsIdentifiers(t *testing.T) {
	classifier := NewMatchClassifier(newDefaultStore(t))

	overlaps, err := classifier.FindOverlaps(context.Background(),
		proposal(" site-001", "por-001 ", fixedItem(" line-002\t", 1)))
	require.NoError(t, err)
	require.Len(t, overlaps, 1)
	assert.Equal(t, "line-002", overlaps[0].Entry.LineItemID)
	assert.Equal(t, "contract-001", overlaps[0].Candidates[0].ID)
}

func TestFindOverlapsHonoursCancelledContext(t *testing.T) {
	classifier := NewMatchClassifier(newDefaultStore(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	overlaps, err := classifier.FindOverlaps(ctx, proposal("site-001", "por-001", fixedItem("line-002", 1)))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, overlaps)
}
