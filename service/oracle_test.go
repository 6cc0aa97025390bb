package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJudgment(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      *Judgment
		wantError bool
	}{
		{
			name: "plain json",
			raw:  `{"similarity_score": 0.85, "is_duplicate": true, "reasoning": "same survey"}`,
			want: &Judgment{SimilarityScore: 0.85, IsDuplicate: true, Reasoning: "same survey"},
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"similarity_score\": 0.1, \"is_duplicate\": false, \"reasoning\": \"different\"}\n```",
			want: &Judgment{SimilarityScore: 0.1, Reasoning: "different"},
		},
		{name: "empty", raw: "   ", wantError: true},
		{name: "not json", raw: "they look similar to me", wantError: true},
		{name: "missing score", raw: `{"is_duplicate": true, "reasoning": "x"}`, wantError: true},
		{name: "score out of range", raw: `{"similarity_score": -0.2, "is_duplicate": false, "reasoning": "x"}`, wantError: true},
		{name: "wrong type", raw: `{"similarity_score": "high", "is_duplicate": false, "reasoning": "x"}`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseJudgment(tt.raw)
			if tt.wantError {
				assert.True(t, errors.Is(err, ErrMalformedJudgment), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildJudgmentPrompt(t *testing.T) {
	prompt := buildJudgmentPrompt(JudgmentRequest{
		NewDetails:      "Survey the roof",
		ExistingDetails: "Roof survey",
		LineItemName:    "Site Survey",
	})

	assert.Contains(t, prompt, "Line item: Site Survey")
	assert.Contains(t, prompt, "NEW: Survey the roof")
	assert.Contains(t, prompt, "EXISTING: Roof survey")

	withoutName := buildJudgmentPrompt(JudgmentRequest{NewDetails: "a", ExistingDetails: "b"})
	assert.NotContains(t, withoutName, "Line item:")
}

func TestResponseText(t *testing.T) {
	assert.Equal(t, "", responseText(nil))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"similarity_score":`), genai.Text(` 0.5}`)}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
		},
	}
	assert.Equal(t, `{"similarity_score": 0.5}`, responseText(resp))
}

func TestGeminiOracleWithoutClient(t *testing.T) {
	oracle := NewGeminiOracle(nil, "gemini-1.5-flash", GeminiWithTemperature(0))
	_, err := oracle.Judge(context.Background(), JudgmentRequest{NewDetails: "a", ExistingDetails: "b"})
	assert.True(t, errors.Is(err, ErrOracleUnavailable))
}
