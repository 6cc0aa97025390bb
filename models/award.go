package models

import "strings"

// AwardProposal is a prospective award submitted for duplicate evaluation.
// It is never persisted.
type AwardProposal struct {
	SiteID       string          `json:"siteId"`
	ProjectRefID string          `json:"projectRefId"`
	LineItems    []LineItemEntry `json:"lineItems"`
}

// Valid reports whether the proposal carries both a site and a project reference
func (p *AwardProposal) Valid() bool {
	return strings.TrimSpace(p.SiteID) != "" && strings.TrimSpace(p.ProjectRefID) != ""
}

// Normalized returns a copy with surrounding whitespace removed from every identifier
func (p *AwardProposal) Normalized() *AwardProposal {
	out := &AwardProposal{
		SiteID:       strings.TrimSpace(p.SiteID),
		ProjectRefID: strings.TrimSpace(p.ProjectRefID),
		LineItems:    make([]LineItemEntry, len(p.LineItems)),
	}
	for i, item := range p.LineItems {
		item.LineItemID = strings.TrimSpace(item.LineItemID)
		out.LineItems[i] = item
	}
	return out
}

// LineItemIDs returns the distinct proposed line-item identifiers in input order
func (p *AwardProposal) LineItemIDs() []string {
	seen := make(map[string]bool, len(p.LineItems))
	ids := make([]string, 0, len(p.LineItems))
	for _, item := range p.LineItems {
		if seen[item.LineItemID] {
			continue
		}
		seen[item.LineItemID] = true
		ids = append(ids, item.LineItemID)
	}
	return ids
}
