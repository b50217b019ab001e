package advisor

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/arpitbiyaniazz/ecooracal/internal/schema"
)

// Messages are the user-facing texts of one feature's outcomes.
type Messages struct {
	Success    string
	Validation string
	// Empty is shown when the model returns a blank result; EmptyForm goes
	// under the "_form" key.
	Empty     string
	EmptyForm string
	// Subject completes "Failed to generate <Subject>: ...".
	Subject     string
	FailureForm string
}

// Feature binds together everything one advice flow needs.
type Feature[T any] struct {
	Key       string
	Operation string
	Input     schema.InputSchema
	Prompt    *template.Template
	Output    *schema.OutputSchema[T]
	Messages  Messages
}

// Render fills the feature's prompt with a validated input.
func (f Feature[T]) Render(in schema.Input) (string, error) {
	var buf bytes.Buffer
	if err := f.Prompt.Execute(&buf, map[string]any(in)); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", f.Operation, err)
	}
	return buf.String(), nil
}

// --- Feature table ---

var waterFeature = Feature[*schema.Tips]{
	Key:       "water",
	Operation: "waterSavingTipsPrompt",
	Input:     schema.WaterInput,
	Prompt:    mustPrompt("waterSavingTipsPrompt", waterSavingTipsPrompt),
	Output:    schema.TipsOutput("Personalized water-saving tips for the household, including relevant rebates and policies."),
	Messages: Messages{
		Success:     "Successfully generated water saving tips!",
		Validation:  "Validation failed. Please check your inputs for water saving tips.",
		Empty:       "AI service returned empty water saving tips. Please try adjusting your input or try again later.",
		EmptyForm:   "AI returned no water tips.",
		Subject:     "water saving tips",
		FailureForm: "AI service error for water tips.",
	},
}

var carbonFeature = Feature[*schema.Tips]{
	Key:       "carbon",
	Operation: "carbonFootprintTipsPrompt",
	Input:     schema.CarbonInput,
	Prompt:    mustPrompt("carbonFootprintTipsPrompt", carbonFootprintTipsPrompt),
	Output:    schema.TipsOutput("Personalized carbon footprint reduction tips for the household, addressing electricity, transportation, diet, and flying."),
	Messages: Messages{
		Success:     "Successfully generated carbon footprint tips!",
		Validation:  "Validation failed. Please check your inputs for carbon footprint tips.",
		Empty:       "AI service returned empty carbon footprint tips. Please try adjusting your input or try again later.",
		EmptyForm:   "AI returned no carbon tips.",
		Subject:     "carbon footprint tips",
		FailureForm: "AI service error for carbon tips.",
	},
}

var electricityFeature = Feature[*schema.Tips]{
	Key:       "electricity",
	Operation: "electricitySavingTipsPrompt",
	Input:     schema.ElectricityInput,
	Prompt:    mustPrompt("electricitySavingTipsPrompt", electricitySavingTipsPrompt),
	Output:    schema.TipsOutput("Personalized electricity-saving tips for the household, covering appliances, heating/cooling, lighting, and other relevant areas."),
	Messages: Messages{
		Success:     "Successfully generated electricity saving tips!",
		Validation:  "Validation failed. Please check your inputs for electricity saving tips.",
		Empty:       "AI service returned empty electricity saving tips. Please try adjusting your input or try again later.",
		EmptyForm:   "AI returned no electricity tips.",
		Subject:     "electricity saving tips",
		FailureForm: "AI service error for electricity tips.",
	},
}

var esgFeature = Feature[*schema.EsgAssessment]{
	Key:       "esg",
	Operation: "esgRiskPrompt",
	Input:     schema.EsgInput,
	Prompt:    mustPrompt("esgRiskPrompt", esgRiskPrompt),
	Output:    schema.EsgOutput,
	Messages: Messages{
		Success:     "Successfully generated ESG Risk Assessment!",
		Validation:  "Validation failed. Please check your inputs.",
		Empty:       "AI service returned an empty assessment. Please try adjusting your input or try again later.",
		EmptyForm:   "AI returned no assessment.",
		Subject:     "ESG assessment",
		FailureForm: "AI service error during assessment.",
	},
}

// Catalogue lists the input schemas of every feature in route order.
func Catalogue() []schema.InputSchema {
	return []schema.InputSchema{
		waterFeature.Input,
		carbonFeature.Input,
		electricityFeature.Input,
		esgFeature.Input,
	}
}
