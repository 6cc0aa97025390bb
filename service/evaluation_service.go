package service

import (
	"context"
	"errors"
	"fmt"

	"awardcheck-backend/metrics"
	"awardcheck-backend/models"
	"awardcheck-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidProposal    = errors.New("proposal requires a site id and a project reference id")
	ErrRecordStoreMissing = errors.New("record store not set")
	ErrStreamIncomplete   = errors.New("evaluation stream ended before the narrative event")
)

// EvaluationService runs the duplicate-check pipeline for award proposals
type EvaluationService struct {
	store      repository.RecordStore
	classifier *MatchClassifier
	assessor   *SemanticAssessor
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// EvaluationServiceOption is a functional option for EvaluationService
type EvaluationServiceOption func(*EvaluationService)

// EvaluationWithRecordStore sets the record store
func EvaluationWithRecordStore(store repository.RecordStore) EvaluationServiceOption {
	return func(s *EvaluationService) {
		s.store = store
	}
}

// EvaluationWithAssessor sets the semantic assessor
func EvaluationWithAssessor(assessor *SemanticAssessor) EvaluationServiceOption {
	return func(s *EvaluationService) {
		s.assessor = assessor
	}
}

// EvaluationWithLogger sets the logger
func EvaluationWithLogger(l *zap.Logger) EvaluationServiceOption {
	return func(s *EvaluationService) {
		if l != nil {
			s.logger = l
		}
	}
}

// EvaluationWithMetrics sets the metrics sink
func EvaluationWithMetrics(m *metrics.Metrics) EvaluationServiceOption {
	return func(s *EvaluationService) {
		s.metrics = m
	}
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(opts ...EvaluationServiceOption) *EvaluationService {
	s := &EvaluationService{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.store != nil {
		s.classifier = NewMatchClassifier(s.store)
	}
	if s.assessor == nil {
		s.assessor = NewSemanticAssessor(nil, AssessorWithLogger(s.logger), AssessorWithMetrics(s.metrics))
	}
	return s
}

// Evaluate validates the proposal and starts the event stream.
// An invalid proposal returns ErrInvalidProposal and emits nothing. Otherwise the
// returned channel yields status, optional duplicate-warning and duplicate-summary,
// then narrative, and is closed. Cancelling ctx stops the stream early.
func (s *EvaluationService) Evaluate(ctx context.Context, proposal *models.AwardProposal) (<-chan models.Event, error) {
	if s.store == nil {
		return nil, ErrRecordStoreMissing
	}
	if proposal == nil || !proposal.Valid() {
		s.metrics.ObserveEvaluation(metrics.OutcomeRejected)
		return nil, ErrInvalidProposal
	}
	proposal = proposal.Normalized()

	evaluationID, ok := EvaluationIDFromContext(ctx)
	if !ok {
		evaluationID = uuid.New()
	}

	events := make(chan models.Event)
	go s.run(ctx, evaluationID, proposal, events)
	return events, nil
}

type evaluationIDKey struct{}

// WithEvaluationID attaches a correlation id that Evaluate uses for logging
func WithEvaluationID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, evaluationIDKey{}, id)
}

// EvaluationIDFromContext returns the id set by WithEvaluationID
func EvaluationIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(evaluationIDKey{}).(uuid.UUID)
	return id, ok
}

func (s *EvaluationService) run(ctx context.Context, evaluationID uuid.UUID, proposal *models.AwardProposal, events chan<- models.Event) {
	defer close(events)

	log := s.logger.With(
		zap.String("evaluation_id", evaluationID.String()),
		zap.String("site_id", proposal.SiteID),
		zap.String("project_ref_id", proposal.ProjectRefID),
	)

	emit := func(ev models.Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}
	cancelled := func() {
		log.Info("evaluation cancelled", zap.Error(ctx.Err()))
		s.metrics.ObserveEvaluation(metrics.OutcomeCancelled)
	}

	if !emit(models.Event{Kind: models.EventStatus, Payload: statusMessage(proposal)}) {
		cancelled()
		return
	}

	overlaps, err := s.classifier.FindOverlaps(ctx, proposal)
	if err != nil {
		if ctx.Err() != nil {
			cancelled()
			return
		}
		// proposal was validated before the stream started
		log.Error("match classification failed", zap.Error(err))
		return
	}

	findings, ok := s.assessOverlaps(ctx, log, overlaps)
	if !ok {
		cancelled()
		return
	}

	summary := models.NewEvaluationSummary(findings, len(proposal.LineItems))
	if len(findings) > 0 {
		if !emit(models.Event{Kind: models.EventDuplicateWarning, Payload: &models.DuplicateWarning{
			Duplicates:             findings,
			RequiresAcknowledgment: true,
		}}) {
			cancelled()
			return
		}
		if !emit(models.Event{Kind: models.EventDuplicateSummary, Payload: &summary}) {
			cancelled()
			return
		}
	}

	if !emit(models.Event{Kind: models.EventNarrative, Payload: narrativeMessage(proposal, summary)}) {
		cancelled()
		return
	}

	outcome := metrics.OutcomeClean
	if len(findings) > 0 {
		outcome = metrics.OutcomeDuplicates
	}
	s.metrics.ObserveEvaluation(outcome)
	log.Info("evaluation completed",
		zap.Int("line_items", summary.TotalLineItems),
		zap.Int("duplicates", summary.TotalDuplicates),
		zap.String("warning_level", string(summary.WarningLevel)),
	)
}

// assessOverlaps turns overlaps into findings in proposal order.
// It returns false if ctx was cancelled before all overlaps were assessed.
func (s *EvaluationService) assessOverlaps(ctx context.Context, log *zap.Logger, overlaps []Overlap) ([]models.DuplicateFinding, bool) {
	findings := make([]models.DuplicateFinding, 0)

	for _, overlap := range overlaps {
		if ctx.Err() != nil {
			return nil, false
		}

		def := overlap.Definition
		if def == nil {
			log.Debug("skipping line item without definition", zap.String("line_item_id", overlap.Entry.LineItemID))
			continue
		}

		switch overlap.MatchKind() {
		case models.MatchKindExact:
			for _, contract := range overlap.Candidates {
				findings = append(findings, models.DuplicateFinding{
					LineItemID:     def.ID,
					LineItemName:   def.Name,
					ContractID:     contract.ID,
					ContractNumber: contract.ContractNumber,
					MatchKind:      models.MatchKindExact,
				})
				s.metrics.ObserveFinding(string(models.MatchKindExact))
			}

		case models.MatchKindSemantic:
			details := overlap.Entry.DetailsText()
			if details == "" {
				continue
			}
			assessment := s.assessor.Assess(ctx, def, details, overlap.Candidates)
			if ctx.Err() != nil {
				return nil, false
			}
			if !assessment.IsDuplicate || assessment.Contract == nil {
				continue
			}
			score := assessment.Score
			findings = append(findings, models.DuplicateFinding{
				LineItemID:      def.ID,
				LineItemName:    def.Name,
				ContractID:      assessment.Contract.ID,
				ContractNumber:  assessment.Contract.ContractNumber,
				MatchKind:       models.MatchKindSemantic,
				SimilarityScore: &score,
				Rationale:       assessment.Rationale,
			})
			s.metrics.ObserveFinding(string(models.MatchKindSemantic))
		}
	}

	return findings, true
}

// EvaluationResult is a fully drained evaluation stream
type EvaluationResult struct {
	Events   []models.Event            `json:"events"`
	Findings []models.DuplicateFinding `json:"findings"`
	Summary  models.EvaluationSummary  `json:"summary"`
}

// Collect runs Evaluate and drains the stream.
// It returns ctx's error if the stream ended early because of cancellation.
func (s *EvaluationService) Collect(ctx context.Context, proposal *models.AwardProposal) (*EvaluationResult, error) {
	events, err := s.Evaluate(ctx, proposal)
	if err != nil {
		return nil, err
	}

	result := &EvaluationResult{Findings: []models.DuplicateFinding{}}
	var summary *models.EvaluationSummary
	completed := false
	for ev := range events {
		result.Events = append(result.Events, ev)
		switch payload := ev.Payload.(type) {
		case *models.DuplicateWarning:
			result.Findings = payload.Duplicates
		case *models.EvaluationSummary:
			summary = payload
		}
		completed = ev.Kind == models.EventNarrative
	}

	if !completed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrStreamIncomplete
	}

	if summary != nil {
		result.Summary = *summary
	} else {
		result.Summary = models.NewEvaluationSummary(result.Findings, len(proposal.LineItems))
	}
	return result, nil
}

func statusMessage(p *models.AwardProposal) string {
	return fmt.Sprintf("Checking %d line item(s) for site %s, project %s against awarded contracts...",
		len(p.LineItems), p.SiteID, p.ProjectRefID)
}

func narrativeMessage(p *models.AwardProposal, summary models.EvaluationSummary) string {
	if summary.TotalDuplicates == 0 {
		return fmt.Sprintf("No duplicate line items found for site %s, project %s. The award can proceed.",
			p.SiteID, p.ProjectRefID)
	}
	return fmt.Sprintf("Found %d potential duplicate line item(s) (%s severity). Review and acknowledge the warnings before proceeding with the award.",
		summary.TotalDuplicates, summary.WarningLevel)
}
