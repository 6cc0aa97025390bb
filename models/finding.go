package models

// MatchKind represents how a duplicate was detected
type MatchKind string

const (
	MatchKindExact    MatchKind = "exact"
	MatchKindSemantic MatchKind = "semantic"
)

// WarningLevel represents the aggregate severity of an evaluation
type WarningLevel string

const (
	WarningLevelLow    WarningLevel = "low"
	WarningLevelMedium WarningLevel = "medium"
	WarningLevelHigh   WarningLevel = "high"
)

// DuplicateFinding links a proposed line item to an awarded contract that already covers it
type DuplicateFinding struct {
	LineItemID      string    `json:"lineItemId"`
	LineItemName    string    `json:"lineItemName"`
	ContractID      string    `json:"contractId"`
	ContractNumber  string    `json:"contractNumber"`
	MatchKind       MatchKind `json:"matchKind"`
	SimilarityScore *float64  `json:"similarityScore,omitempty"` // semantic only
	Rationale       string    `json:"rationale,omitempty"`       // semantic only
}

// EvaluationSummary aggregates the findings of one evaluation
type EvaluationSummary struct {
	TotalDuplicates int          `json:"totalDuplicates"`
	TotalLineItems  int          `json:"totalLineItems"`
	WarningLevel    WarningLevel `json:"warningLevel"`
}

// WarningLevelFor maps a duplicate count to a severity.
// A count of zero has no level and returns "".
func WarningLevelFor(duplicates int) WarningLevel {
	switch {
	case duplicates <= 0:
		return ""
	case duplicates == 1:
		return WarningLevelLow
	case duplicates <= 3:
		return WarningLevelMedium
	default:
		return WarningLevelHigh
	}
}

// NewEvaluationSummary builds the summary for a set of findings
func NewEvaluationSummary(findings []DuplicateFinding, totalLineItems int) EvaluationSummary {
	return EvaluationSummary{
		TotalDuplicates: len(findings),
		TotalLineItems:  totalLineItems,
		WarningLevel:    WarningLevelFor(len(findings)),
	}
}
