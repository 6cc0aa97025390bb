package repository

import (
	"errors"
	"testing"

	"awardcheck-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractIDs(contracts []*models.ContractRecord) []string {
	ids := make([]string, 0, len(contracts))
	for _, c := range contracts {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestDefaultSeedBuildsStore(t *testing.T) {
	store, err := NewMemoryRecordStore(DefaultSeed())
	require.NoError(t, err)

	site, err := store.GetSite("site-001")
	require.NoError(t, err)
	assert.Equal(t, "Downtown Tower", site.Name)

	ref, err := store.GetProjectRef("por-003")
	require.NoError(t, err)
	assert.Equal(t, "site-003", ref.SiteID)

	def, err := store.GetLineItemDefinition("line-002")
	require.NoError(t, err)
	assert.True(t, def.IsFixed())

	contract, err := store.GetContract("contract-003")
	require.NoError(t, err)
	assert.Equal(t, models.ContractStatusCancelled, contract.Status)
}

func TestLookupMisses(t *testing.T) {
	store, err := NewMemoryRecordStore(DefaultSeed())
	require.NoError(t, err)

	_, err = store.GetSite("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = store.GetProjectRef("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = store.GetLineItemDefinition("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = store.GetContract("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListsAreSorted(t *testing.T) {
	store, err := NewMemoryRecordStore(DefaultSeed())
	require.NoError(t, err)

	sites := store.ListSites()
	require.Len(t, sites, 3)
	assert.Equal(t, "site-001", sites[0].ID)
	assert.Equal(t, "site-003", sites[2].ID)

	defs := store.ListLineItemDefinitions()
	require.Len(t, defs, 6)
	for i := 1; i < len(defs); i++ {
		assert.Less(t, defs[i-1].ID, defs[i].ID)
	}
}

func TestFindAwardedContracts(t *testing.T) {
	store, err := NewMemoryRecordStore(DefaultSeed())
	require.NoError(t, err)

	tests := []struct {
		name      string
		site      string
		project   string
		lineItems []string
		want      []string
	}{
		{name: "shared fixed item", site: "site-001", project: "por-001", lineItems: []string{"line-001"}, want: []string{"contract-001", "contract-002"}},
		{name: "single contract item", site: "site-001", project: "por-001", lineItems: []string{"line-002"}, want: []string{"contract-001"}},
		{name: "any line item", site: "site-001", project: "por-001", want: []string{"contract-001", "contract-002"}},
		{name: "cancelled excluded", site: "site-001", project: "por-001", lineItems: []string{"line-005"}, want: nil},
		{name: "pending excluded", site: "site-002", project: "por-002", lineItems: []string{"line-002"}, want: nil},
		{name: "no contracts at pair", site: "site-003", project: "por-003", want: nil},
		{name: "mismatched project", site: "site-001", project: "por-002", lineItems: []string{"line-001"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.FindAwardedContracts(tt.site, tt.project, tt.lineItems)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, contractIDs(got))
		})
	}
}

func TestNewMemoryRecordStoreRejectsBadSeeds(t *testing.T) {
	dupSite := &Seed{Sites: []models.Site{{ID: "a"}, {ID: "a"}}}
	_, err := NewMemoryRecordStore(dupSite)
	assert.True(t, errors.Is(err, ErrDuplicateID))

	badKind := &Seed{LineItems: []models.LineItemDefinition{{ID: "x", CostKind: "hourly"}}}
	_, err = NewMemoryRecordStore(badKind)
	assert.True(t, errors.Is(err, ErrInvalidSeed))

	badStatus := &Seed{Contracts: []models.ContractRecord{{ID: "c", Status: "draft"}}}
	_, err = NewMemoryRecordStore(badStatus)
	assert.True(t, errors.Is(err, ErrInvalidSeed))

	_, err = NewMemoryRecordStore(nil)
	assert.True(t, errors.Is(err, ErrInvalidSeed))
}
