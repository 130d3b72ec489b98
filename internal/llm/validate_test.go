package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func cardsSchema() *Schema {
	return &Schema{
		Name: "test-cards",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"cards": map[string]any{
					"type":     "array",
					"minItems": 1,
					"maxItems": 3,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"front": map[string]any{"type": "string"},
							"back":  map[string]any{"type": "string"},
							"level": map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
						},
						"required":             []any{"front", "back"},
						"additionalProperties": false,
					},
				},
			},
			"required": []any{"cards"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"cards":[{"front":"Mitosis","back":"Cell division","level":"easy"}]}`, false},
		{"optional field omitted", `{"cards":[{"front":"a","back":"b"}]}`, false},
		{"missing required", `{"cards":[{"front":"a"}]}`, true},
		{"wrong type", `{"cards":[{"front":1,"back":"b"}]}`, true},
		{"bad enum", `{"cards":[{"front":"a","back":"b","level":"medium"}]}`, true},
		{"extra property", `{"cards":[{"front":"a","back":"b","hint":"c"}]}`, true},
		{"too few items", `{"cards":[]}`, true},
		{"too many items", `{"cards":[{"front":"a","back":"b"},{"front":"a","back":"b"},{"front":"a","back":"b"},{"front":"a","back":"b"}]}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(cardsSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			assert.ErrorAs(t, err, &inv)
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`anything`)))
}
