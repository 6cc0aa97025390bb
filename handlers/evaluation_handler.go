package handlers

import (
	"context"
	"errors"
	"net/http"

	"awardcheck-backend/models"
	"awardcheck-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	mimeEventStream    = "text/event-stream"
	evaluationIDHeader = "X-Evaluation-ID"
)

// EvaluationHandler handles HTTP requests for award duplicate checks
type EvaluationHandler struct {
	evaluationService *service.EvaluationService
	logger            *zap.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evaluationService *service.EvaluationService, logger *zap.Logger) *EvaluationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationHandler{
		evaluationService: evaluationService,
		logger:            logger,
	}
}

// EvaluateRequest represents the request body for an award evaluation
type EvaluateRequest struct {
	SiteID       string                 `json:"siteId" binding:"required"`
	ProjectRefID string                 `json:"projectRefId" binding:"required"`
	LineItems    []models.LineItemEntry `json:"lineItems" binding:"dive"`
}

func (r EvaluateRequest) proposal() *models.AwardProposal {
	return &models.AwardProposal{
		SiteID:       r.SiteID,
		ProjectRefID: r.ProjectRefID,
		LineItems:    r.LineItems,
	}
}

// Evaluate handles POST /api/awards/evaluate.
// The response is an SSE stream unless the client only accepts JSON.
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	evaluationID := uuid.New()
	ctx := service.WithEvaluationID(c.Request.Context(), evaluationID)
	c.Header(evaluationIDHeader, evaluationID.String())

	if c.NegotiateFormat(mimeEventStream, binding.MIMEJSON) == binding.MIMEJSON {
		h.evaluateJSON(ctx, c, req)
		return
	}

	events, err := h.evaluationService.Evaluate(ctx, req.proposal())
	if err != nil {
		h.respondEvaluationError(c, err)
		return
	}

	c.Header("Content-Type", mimeEventStream)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	// The producer stops when the request context is cancelled, which closes events
	for ev := range events {
		c.SSEvent(string(ev.Kind), ev.Payload)
		c.Writer.Flush()
	}
}

func (h *EvaluationHandler) evaluateJSON(ctx context.Context, c *gin.Context, req EvaluateRequest) {
	result, err := h.evaluationService.Collect(ctx, req.proposal())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			h.logger.Info("client went away during evaluation", zap.String("evaluation_id", c.Writer.Header().Get(evaluationIDHeader)))
			return
		}
		h.respondEvaluationError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h *EvaluationHandler) respondEvaluationError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidProposal) {
		respondError(c, http.StatusBadRequest, "INVALID_PROPOSAL", err.Error())
		return
	}
	h.logger.Error("evaluation failed", zap.Error(err))
	respondError(c, http.StatusInternalServerError, "EVALUATION_FAILED", err.Error())
}
