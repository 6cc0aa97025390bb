package models

import "time"

// ContractStatus represents the lifecycle status of a contract
type ContractStatus string

const (
	ContractStatusAwarded   ContractStatus = "awarded"
	ContractStatusPending   ContractStatus = "pending"
	ContractStatusCancelled ContractStatus = "cancelled"
)

// ContractRecord represents an existing contract and its line items.
// Only awarded contracts take part in duplicate evaluation.
type ContractRecord struct {
	ID             string          `json:"id" yaml:"id"`
	ContractNumber string          `json:"contractNumber" yaml:"contract_number"`
	SiteID         string          `json:"siteId" yaml:"site_id"`
	ProjectRefID   string          `json:"projectRefId" yaml:"project_ref_id"`
	Status         ContractStatus  `json:"status" yaml:"status"`
	LineItems      []LineItemEntry `json:"lineItems" yaml:"line_items"`
	AwardDate      time.Time       `json:"awardDate" yaml:"award_date"`
}

// IsAwarded reports whether the contract can produce duplicate findings
func (c *ContractRecord) IsAwarded() bool {
	return c.Status == ContractStatusAwarded
}

// Entry returns the first line item on the contract with the given identifier
func (c *ContractRecord) Entry(lineItemID string) (LineItemEntry, bool) {
	for _, item := range c.LineItems {
		if item.LineItemID == lineItemID {
			return item, true
		}
	}
	return LineItemEntry{}, false
}

// HasLineItem reports whether the contract contains the given line item
func (c *ContractRecord) HasLineItem(lineItemID string) bool {
	_, ok := c.Entry(lineItemID)
	return ok
}
