package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"awardcheck-backend/metrics"
	"awardcheck-backend/models"

	"go.uber.org/zap"
)

const (
	defaultOracleTimeout     = 5 * time.Second
	defaultOracleMaxAttempts = 1

	noComparableDetails = "no comparable details"
)

// SemanticAssessment is the verdict for one variable-cost entry
type SemanticAssessment struct {
	IsDuplicate bool
	Score       float64
	Rationale   string
	Contract    *models.ContractRecord // the representative contract compared against, if any
	Fallback    bool                   // verdict came from the lexical heuristic
}

// SemanticAssessor wraps a JudgmentOracle with a timeout, a bounded number of
// attempts, and a lexical fallback. It never fails.
type SemanticAssessor struct {
	oracle      JudgmentOracle
	timeout     time.Duration
	maxAttempts int
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// AssessorOption is a functional option for SemanticAssessor
type AssessorOption func(*SemanticAssessor)

// AssessorWithTimeout bounds each oracle attempt
func AssessorWithTimeout(d time.Duration) AssessorOption {
	return func(a *SemanticAssessor) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// AssessorWithMaxAttempts sets how many oracle attempts are made before falling back
func AssessorWithMaxAttempts(n int) AssessorOption {
	return func(a *SemanticAssessor) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// AssessorWithLogger sets the logger
func AssessorWithLogger(l *zap.Logger) AssessorOption {
	return func(a *SemanticAssessor) {
		if l != nil {
			a.logger = l
		}
	}
}

// AssessorWithMetrics sets the metrics sink
func AssessorWithMetrics(m *metrics.Metrics) AssessorOption {
	return func(a *SemanticAssessor) {
		a.metrics = m
	}
}

// NewSemanticAssessor creates an assessor. A nil oracle always uses the lexical heuristic.
func NewSemanticAssessor(oracle JudgmentOracle, opts ...AssessorOption) *SemanticAssessor {
	a := &SemanticAssessor{
		oracle:      oracle,
		timeout:     defaultOracleTimeout,
		maxAttempts: defaultOracleMaxAttempts,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assess compares newDetails with the first candidate whose entry for the same
// line item has non-empty details. Only that representative is judged.
func (a *SemanticAssessor) Assess(
	ctx context.Context,
	def *models.LineItemDefinition,
	newDetails string,
	candidates []*models.ContractRecord,
) SemanticAssessment {
	contract, existing := firstComparable(def.ID, candidates)
	if contract == nil || newDetails == "" {
		return SemanticAssessment{Rationale: noComparableDetails}
	}

	req := JudgmentRequest{
		NewDetails:      newDetails,
		ExistingDetails: existing,
		LineItemName:    def.Name,
	}

	judgment, err := a.judge(ctx, req)
	if err != nil {
		if ctx.Err() == nil {
			a.logger.Warn("judgment oracle failed, using lexical fallback",
				zap.String("line_item_id", def.ID),
				zap.String("contract_id", contract.ID),
				zap.Error(err),
			)
		}
		a.metrics.ObserveOracleCall(metrics.OracleFallback, 0)
		assessment := lexicalAssessment(newDetails, existing, err)
		assessment.Contract = contract
		return assessment
	}

	return SemanticAssessment{
		IsDuplicate: judgment.IsDuplicate || judgment.SimilarityScore > oracleScoreThreshold,
		Score:       judgment.SimilarityScore,
		Rationale:   judgment.Reasoning,
		Contract:    contract,
	}
}

func (a *SemanticAssessor) judge(ctx context.Context, req JudgmentRequest) (*Judgment, error) {
	if a.oracle == nil {
		return nil, ErrOracleUnavailable
	}

	var lastErr error
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		start := time.Now()
		judgment, err := a.oracle.Judge(callCtx, req)
		if err == nil && judgment == nil {
			err = fmt.Errorf("%w: nil judgment", ErrMalformedJudgment)
		}
		if err == nil && (judgment.SimilarityScore < 0 || judgment.SimilarityScore > 1) {
			err = fmt.Errorf("%w: similarity_score %v outside [0,1]", ErrMalformedJudgment, judgment.SimilarityScore)
		}
		cancel()

		if err == nil {
			a.metrics.ObserveOracleCall(metrics.OracleOK, time.Since(start))
			return judgment, nil
		}

		a.metrics.ObserveOracleCall(metrics.OracleError, time.Since(start))
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("oracle timed out after %s: %w", a.timeout, err)
		}
		lastErr = err
	}
	return nil, lastErr
}

// firstComparable returns the first candidate contract carrying non-empty details for lineItemID
func firstComparable(lineItemID string, candidates []*models.ContractRecord) (*models.ContractRecord, string) {
	for _, contract := range candidates {
		for _, item := range contract.LineItems {
			if item.LineItemID != lineItemID {
				continue
			}
			if details := item.DetailsText(); details != "" {
				return contract, details
			}
		}
	}
	return nil, ""
}

func lexicalAssessment(newDetails, existing string, cause error) SemanticAssessment {
	overlap := LexicalOverlap(newDetails, existing)
	return SemanticAssessment{
		IsDuplicate: overlap > lexicalDuplicateThreshold,
		Score:       overlap,
		Rationale: fmt.Sprintf(
			"Lexical fallback after oracle failure (%v): %.0f%% of significant terms overlap with the existing description",
			cause, overlap*100,
		),
		Fallback: true,
	}
}
