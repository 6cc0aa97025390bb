package repository

import (
	"errors"
	"fmt"
	"io"
	"time"

	"awardcheck-backend/models"

	"gopkg.in/yaml.v3"
)

// Seed is the full record set a store is built from
type Seed struct {
	Sites       []models.Site               `yaml:"sites"`
	ProjectRefs []models.ProjectRef         `yaml:"project_refs"`
	LineItems   []models.LineItemDefinition `yaml:"line_items"`
	Contracts   []models.ContractRecord     `yaml:"contracts"`
}

// DecodeSeed reads a YAML seed document
func DecodeSeed(r io.Reader) (*Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return &Seed{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return &seed, nil
}

// EncodeSeed writes a seed as YAML
func EncodeSeed(w io.Writer, seed *Seed) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(seed); err != nil {
		return fmt.Errorf("failed to encode seed: %w", err)
	}
	return enc.Close()
}

func qty(v float64) *float64 { return &v }

func text(s string) *string { return &s }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DefaultSeed returns the built-in mock record set
func DefaultSeed() *Seed {
	return &Seed{
		Sites: []models.Site{
			{ID: "site-001", Name: "Downtown Tower", Address: "100 Main St"},
			{ID: "site-002", Name: "Harbor Data Center", Address: "2 Pier Rd"},
			{ID: "site-003", Name: "North Campus", Address: "350 College Ave"},
		},
		ProjectRefs: []models.ProjectRef{
			{ID: "por-001", Name: "Tower Network Upgrade", SiteID: "site-001"},
			{ID: "por-002", Name: "Harbor Cooling Retrofit", SiteID: "site-002"},
			{ID: "por-003", Name: "Campus Wireless Expansion", SiteID: "site-003"},
		},
		LineItems: []models.LineItemDefinition{
			{ID: "line-001", Name: "Fiber Optic Cable Installation", CostKind: models.CostKindFixed},
			{ID: "line-002", Name: "Network Switch", CostKind: models.CostKindFixed},
			{ID: "line-003", Name: "Site Survey", CostKind: models.CostKindVariable},
			{ID: "line-004", Name: "Installation Labor", CostKind: models.CostKindVariable},
			{ID: "line-005", Name: "Uninterruptible Power Supply", CostKind: models.CostKindFixed},
			{ID: "line-006", Name: "Project Management Services", CostKind: models.CostKindVariable},
		},
		Contracts: []models.ContractRecord{
			{
				ID:             "contract-001",
				ContractNumber: "CN-2024-0101",
				SiteID:         "site-001",
				ProjectRefID:   "por-001",
				Status:         models.ContractStatusAwarded,
				AwardDate:      date(2024, time.January, 15),
				LineItems: []models.LineItemEntry{
					{LineItemID: "line-001", Quantity: qty(500)},
					{LineItemID: "line-002", Quantity: qty(1)},
					{LineItemID: "line-003", Details: text("Comprehensive site survey including RF signal analysis and structural assessment of riser closets")},
				},
			},
			{
				ID:             "contract-002",
				ContractNumber: "CN-2024-0117",
				SiteID:         "site-001",
				ProjectRefID:   "por-001",
				Status:         models.ContractStatusAwarded,
				AwardDate:      date(2024, time.March, 2),
				LineItems: []models.LineItemEntry{
					{LineItemID: "line-001", Quantity: qty(200)},
					{LineItemID: "line-004", Details: text("Installation labor for pulling fiber through floors 10-20 and terminating patch panels")},
				},
			},
			{
				ID:             "contract-003",
				ContractNumber: "CN-2024-0133",
				SiteID:         "site-001",
				ProjectRefID:   "por-001",
				Status:         models.ContractStatusCancelled,
				AwardDate:      date(2024, time.April, 20),
				LineItems: []models.LineItemEntry{
					{LineItemID: "line-005", Quantity: qty(2)},
				},
			},
			{
				ID:             "contract-004",
				ContractNumber: "CN-2024-0150",
				SiteID:         "site-002",
				ProjectRefID:   "por-002",
				Status:         models.ContractStatusPending,
				AwardDate:      date(2024, time.June, 11),
				LineItems: []models.LineItemEntry{
					{LineItemID: "line-002", Quantity: qty(4)},
				},
			},
			{
				ID:             "contract-005",
				ContractNumber: "CN-2024-0162",
				SiteID:         "site-002",
				ProjectRefID:   "por-002",
				Status:         models.ContractStatusAwarded,
				AwardDate:      date(2024, time.July, 8),
				LineItems: []models.LineItemEntry{
					{LineItemID: "line-005", Quantity: qty(3)},
					{LineItemID: "line-006", Details: text("Project management and weekly coordination meetings for the cooling retrofit")},
				},
			},
		},
	}
}
