package models

import "strings"

// CostKind represents how a line item is priced
type CostKind string

const (
	CostKindFixed    CostKind = "fixed"
	CostKindVariable CostKind = "variable"
)

// LineItemDefinition represents a catalogue entry that contract line items reference
type LineItemDefinition struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	CostKind CostKind `json:"costKind" yaml:"cost_kind"`
}

// IsFixed reports whether duplicates of this item are detected by exact identifier match
func (d *LineItemDefinition) IsFixed() bool {
	return d.CostKind == CostKindFixed
}

// LineItemEntry is a line item as it appears inside a contract or a proposal.
// Quantity is meaningful for fixed-cost items, Details for variable-cost items.
type LineItemEntry struct {
	LineItemID string   `json:"lineItemId" yaml:"line_item_id" binding:"required"`
	Quantity   *float64 `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Details    *string  `json:"details,omitempty" yaml:"details,omitempty"`
}

// DetailsText returns the trimmed free-text details, or "" when absent
func (e LineItemEntry) DetailsText() string {
	if e.Details == nil {
		return ""
	}
	return strings.TrimSpace(*e.Details)
}
