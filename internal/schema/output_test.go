package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAssessment = `{
	"environmental": {"score": "High", "summary": "Emission fines reported.", "evidence": ["fined for emissions"]},
	"social": {"score": "Low", "summary": "No notable issues.", "evidence": []},
	"governance": {"score": "Not Assessed", "summary": "No disclosure.", "evidence": []},
	"overallSummary": "Elevated environmental risk."
}`

func TestTipsOutput_Parse(t *testing.T) {
	out := TipsOutput("Water saving tips.")

	tips, err := out.Parse([]byte(`{"tips":"- Fix leaks"}`))
	require.NoError(t, err)
	assert.Equal(t, "- Fix leaks", tips.Tips)
}

func TestTipsOutput_Blank(t *testing.T) {
	out := TipsOutput("Water saving tips.")

	_, err := out.Parse([]byte(`{"tips":"   "}`))
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestTipsOutput_Malformed(t *testing.T) {
	out := TipsOutput("Water saving tips.")

	cases := map[string]string{
		"not json":      `Here are your tips: fix leaks`,
		"missing key":   `{"advice":"fix leaks"}`,
		"wrong type":    `{"tips":["fix leaks"]}`,
		"not an object": `"fix leaks"`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := out.Parse([]byte(raw))
			assert.ErrorIs(t, err, ErrMalformedOutput)
		})
	}
}

func TestEsgOutput_Parse(t *testing.T) {
	a, err := EsgOutput.Parse([]byte(validAssessment))

	require.NoError(t, err)
	assert.Equal(t, RiskHigh, a.Environmental.Score)
	assert.Equal(t, []string{"fined for emissions"}, a.Environmental.Evidence)
	assert.Equal(t, RiskNotAssessed, a.Governance.Score)
	assert.Equal(t, "Elevated environmental risk.", a.OverallSummary)
}

func TestEsgOutput_ScoreOutsideEnum(t *testing.T) {
	raw := `{
		"environmental": {"score": "Severe", "summary": "s", "evidence": []},
		"social": {"score": "Low", "summary": "s", "evidence": []},
		"governance": {"score": "Low", "summary": "s", "evidence": []},
		"overallSummary": "x"
	}`

	_, err := EsgOutput.Parse([]byte(raw))
	require.ErrorIs(t, err, ErrMalformedOutput)
	assert.Contains(t, err.Error(), "environmental.score")
}

func TestEsgOutput_MissingCategory(t *testing.T) {
	raw := `{
		"environmental": {"score": "Low", "summary": "s", "evidence": []},
		"social": {"score": "Low", "summary": "s", "evidence": []},
		"overallSummary": "x"
	}`

	_, err := EsgOutput.Parse([]byte(raw))
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestEsgOutput_BlankSummary(t *testing.T) {
	raw := `{
		"environmental": {"score": "Low", "summary": "s", "evidence": []},
		"social": {"score": "Low", "summary": "s", "evidence": []},
		"governance": {"score": "Low", "summary": "s", "evidence": []},
		"overallSummary": ""
	}`

	_, err := EsgOutput.Parse([]byte(raw))
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestEsgOutput_ResponseSchema(t *testing.T) {
	require.NotNil(t, EsgOutput.Response)
	assert.ElementsMatch(t,
		[]string{"environmental", "social", "governance", "overallSummary"},
		EsgOutput.Response.Required)
	assert.Equal(t, []string{"Low", "Medium", "High", "Not Assessed"},
		EsgOutput.Response.Properties["social"].Properties["score"].Enum)
}
