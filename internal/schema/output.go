package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arpitbiyaniazz/ecooracal/internal/geminiservice"
	"github.com/xeipuuv/gojsonschema"
)

// RiskScore is the rating given to one ESG category.
type RiskScore string

const (
	RiskLow         RiskScore = "Low"
	RiskMedium      RiskScore = "Medium"
	RiskHigh        RiskScore = "High"
	RiskNotAssessed RiskScore = "Not Assessed"
)

// RiskScores lists every accepted score in display order.
var RiskScores = []RiskScore{RiskLow, RiskMedium, RiskHigh, RiskNotAssessed}

// Tips is the reply of the water, carbon and electricity features.
type Tips struct {
	Tips string `json:"tips"`
}

// RiskCategory is the assessment of one ESG pillar.
type RiskCategory struct {
	Score    RiskScore `json:"score"`
	Summary  string    `json:"summary"`
	Evidence []string  `json:"evidence"`
}

// EsgAssessment is the risk scorecard for a corporate report.
type EsgAssessment struct {
	Environmental  RiskCategory `json:"environmental"`
	Social         RiskCategory `json:"social"`
	Governance     RiskCategory `json:"governance"`
	OverallSummary string       `json:"overallSummary"`
}

// OutputSchema describes the JSON shape a feature expects back from the
// model. Response is sent upstream; the same shape is enforced locally.
type OutputSchema[T any] struct {
	Response *geminiservice.GeminiSchema
	schema   *gojsonschema.Schema
	blank    func(T) bool
}

// NewOutputSchema compiles response into a local validator. blank reports
// whether a well-formed reply carries no usable content; it may be nil.
func NewOutputSchema[T any](response *geminiservice.GeminiSchema, blank func(T) bool) (*OutputSchema[T], error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(response.JSONSchema()))
	if err != nil {
		return nil, fmt.Errorf("failed to compile output schema: %w", err)
	}
	return &OutputSchema[T]{Response: response, schema: compiled, blank: blank}, nil
}

// MustOutputSchema is NewOutputSchema for package-level declarations.
func MustOutputSchema[T any](response *geminiservice.GeminiSchema, blank func(T) bool) *OutputSchema[T] {
	s, err := NewOutputSchema(response, blank)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse validates raw against the schema and decodes it. Shape violations
// wrap ErrMalformedOutput; a well-formed but blank reply returns ErrEmptyResult.
func (o *OutputSchema[T]) Parse(raw []byte) (T, error) {
	var zero T

	result, err := o.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return zero, fmt.Errorf("%w: %s", ErrMalformedOutput, strings.Join(problems, "; "))
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if o.blank != nil && o.blank(out) {
		return zero, ErrEmptyResult
	}
	return out, nil
}

// --- Response schemas ---

func riskCategorySchema(description string) *geminiservice.GeminiSchema {
	scores := make([]string, len(RiskScores))
	for i, s := range RiskScores {
		scores[i] = string(s)
	}
	return &geminiservice.GeminiSchema{
		Type:        geminiservice.TypeObject,
		Description: description,
		Properties: map[string]*geminiservice.GeminiSchema{
			"score": {
				Type:        geminiservice.TypeString,
				Format:      "enum",
				Description: `A risk score for this category ("Low", "Medium", "High", "Not Assessed").`,
				Enum:        scores,
			},
			"summary": {
				Type:        geminiservice.TypeString,
				Description: "A concise summary of the key risks and findings for this category.",
			},
			"evidence": {
				Type:        geminiservice.TypeArray,
				Description: "Direct quotes or summarized passages from the report text that serve as evidence for the assessment.",
				Items:       &geminiservice.GeminiSchema{Type: geminiservice.TypeString},
			},
		},
		Required: []string{"score", "summary", "evidence"},
	}
}

// TipsOutput builds the reply schema for a tips feature.
func TipsOutput(description string) *OutputSchema[*Tips] {
	return MustOutputSchema(&geminiservice.GeminiSchema{
		Type: geminiservice.TypeObject,
		Properties: map[string]*geminiservice.GeminiSchema{
			"tips": {Type: geminiservice.TypeString, Description: description},
		},
		Required: []string{"tips"},
	}, func(t *Tips) bool {
		return t == nil || strings.TrimSpace(t.Tips) == ""
	})
}

// EsgOutput is the reply schema of the ESG assessment.
var EsgOutput = MustOutputSchema(&geminiservice.GeminiSchema{
	Type: geminiservice.TypeObject,
	Properties: map[string]*geminiservice.GeminiSchema{
		"environmental":  riskCategorySchema("Assessment of environmental risks like emissions, pollution, and resource management."),
		"social":         riskCategorySchema("Assessment of social risks like labor practices, community relations, and data privacy."),
		"governance":     riskCategorySchema("Assessment of governance risks like board structure, executive compensation, and business ethics."),
		"overallSummary": {Type: geminiservice.TypeString, Description: "A brief, high-level summary of the overall ESG risk profile based on the report."},
	},
	Required: []string{"environmental", "social", "governance", "overallSummary"},
}, func(a *EsgAssessment) bool {
	return a == nil || strings.TrimSpace(a.OverallSummary) == ""
})
