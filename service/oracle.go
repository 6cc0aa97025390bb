package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

var (
	ErrOracleUnavailable = errors.New("judgment oracle unavailable")
	ErrMalformedJudgment = errors.New("malformed judgment")
)

// JudgmentRequest is a single pair of free-text descriptions to compare
type JudgmentRequest struct {
	NewDetails      string
	ExistingDetails string
	LineItemName    string // optional context
}

// Judgment is the oracle's verdict on a JudgmentRequest
type Judgment struct {
	SimilarityScore float64 `json:"similarity_score"`
	IsDuplicate     bool    `json:"is_duplicate"`
	Reasoning       string  `json:"reasoning"`
}

// JudgmentOracle decides whether two work descriptions describe the same work
type JudgmentOracle interface {
	Judge(ctx context.Context, req JudgmentRequest) (*Judgment, error)
}

// GeminiOracle asks a Gemini model for a structured similarity judgment
type GeminiOracle struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

// GeminiOracleOption is a functional option for GeminiOracle
type GeminiOracleOption func(*GeminiOracle)

// GeminiWithTemperature sets the sampling temperature
func GeminiWithTemperature(t float32) GeminiOracleOption {
	return func(o *GeminiOracle) {
		o.temperature = t
	}
}

// NewGeminiOracle creates an oracle for the given model
func NewGeminiOracle(client *genai.Client, modelName string, opts ...GeminiOracleOption) *GeminiOracle {
	o := &GeminiOracle{
		client:      client,
		modelName:   modelName,
		temperature: 0.1,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var judgmentSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"similarity_score": {
			Type:        genai.TypeNumber,
			Description: "Semantic similarity between 0 and 1",
		},
		"is_duplicate": {
			Type:        genai.TypeBoolean,
			Description: "Whether both descriptions cover the same work",
		},
		"reasoning": {
			Type:        genai.TypeString,
			Description: "One or two sentences explaining the verdict",
		},
	},
	Required: []string{"similarity_score", "is_duplicate", "reasoning"},
}

// Judge implements JudgmentOracle
func (o *GeminiOracle) Judge(ctx context.Context, req JudgmentRequest) (*Judgment, error) {
	if o.client == nil {
		return nil, ErrOracleUnavailable
	}

	model := o.client.GenerativeModel(o.modelName)
	model.SetTemperature(o.temperature)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = judgmentSchema

	resp, err := model.GenerateContent(ctx, genai.Text(buildJudgmentPrompt(req)))
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	return parseJudgment(responseText(resp))
}

func buildJudgmentPrompt(req JudgmentRequest) string {
	var b strings.Builder
	b.WriteString("You review contract awards for duplicated work.\n")
	b.WriteString("Decide whether the NEW line item description covers the same work as the EXISTING one, ")
	b.WriteString("even if worded differently. Scope, location and deliverables matter more than wording.\n\n")
	if req.LineItemName != "" {
		fmt.Fprintf(&b, "Line item: %s\n", req.LineItemName)
	}
	fmt.Fprintf(&b, "NEW: %s\n", req.NewDetails)
	fmt.Fprintf(&b, "EXISTING: %s\n\n", req.ExistingDetails)
	b.WriteString("Respond with JSON containing similarity_score (0 to 1), is_duplicate and reasoning.")
	return b.String()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		// first candidate with content is authoritative
		if b.Len() > 0 {
			break
		}
	}
	return b.String()
}

// parseJudgment decodes a model reply, tolerating a fenced code block
func parseJudgment(raw string) (*Judgment, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedJudgment)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJudgment, err)
	}
	if _, ok := fields["similarity_score"]; !ok {
		return nil, fmt.Errorf("%w: missing similarity_score", ErrMalformedJudgment)
	}

	var j Judgment
	if err := json.Unmarshal([]byte(raw), &j); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJudgment, err)
	}
	if j.SimilarityScore < 0 || j.SimilarityScore > 1 {
		return nil, fmt.Errorf("%w: similarity_score %v outside [0,1]", ErrMalformedJudgment, j.SimilarityScore)
	}
	return &j, nil
}
