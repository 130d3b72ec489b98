package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"summary":"one"}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Content: json.RawMessage(`{"summary":"two"}`)},
	)

	resp, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"one"}`, string(resp.Content))
	assert.Equal(t, 10, resp.Usage.InputTokens)
	assert.Equal(t, StopEnd, resp.StopReason)

	resp, err = mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"two"}`, string(resp.Content))

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "first", mock.Calls[0].Messages[0].Content)
}

func TestMockProvider_AddResponseAndError(t *testing.T) {
	mock := NewMockProvider()
	mock.AddResponse(MockResponse{Err: errors.New("boom")})

	_, err := mock.Generate(context.Background(), Request{})
	assert.EqualError(t, err, "boom")
}

func TestFinish(t *testing.T) {
	req := Request{Schema: summarySchema()}

	resp, err := finish(req, json.RawMessage(`{"summary":"ok"}`), Usage{InputTokens: 3, OutputTokens: 4}, "m", StopEnd)
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Usage.TotalTokens)
	assert.Equal(t, "m", resp.Model)

	_, err = finish(req, json.RawMessage(`{"summary":`), Usage{}, "m", StopMaxTokens)
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)

	_, err = finish(req, json.RawMessage(`{"nope":1}`), Usage{}, "m", StopEnd)
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)

	// Without a schema, raw text passes through even when truncated.
	resp, err = finish(Request{}, json.RawMessage(`partial`), Usage{}, "m", StopMaxTokens)
	require.NoError(t, err)
	assert.Equal(t, StopMaxTokens, resp.StopReason)
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "claude-haiku-4-5", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "claude-opus-4-5", resolveModel("claude-opus-4-5", anthropicModels))
}

func TestPurposeContext(t *testing.T) {
	assert.Equal(t, PurposeUnknown, PurposeFrom(context.Background()))
	assert.Equal(t, PurposeUnknown, PurposeFrom(WithPurpose(context.Background(), "")))
	assert.Equal(t, "study-quiz", PurposeFrom(WithPurpose(context.Background(), "study-quiz")))
}

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  *ModelCost
	}{
		{"gpt-4o-mini", &ModelCost{0.15, 0.6}},
		{"claude-haiku-4-5-20251001", &ModelCost{1, 5}},
		{"google/gemini-2.5-flash", &ModelCost{0.3, 2.5}},
		{"mock", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LookupCost(tt.model), tt.model)
	}

	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}
	assert.InDelta(t, 0.006, c.Cost(1000, 1000), 1e-12)
}

func summarySchema() *Schema {
	return &Schema{
		Name: "test-summary",
		Definition: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{"summary": map[string]any{"type": "string"}},
			"required":             []any{"summary"},
			"additionalProperties": false,
		},
	}
}
