package schema

/* =================================================================================
							FEATURE INPUT CATALOGUE
	One InputSchema per advice feature. Messages mirror the wording shown on the forms.
=================================================================================*/

const (
	maxDescription = 2000
	minDescription = 10
)

func residentsField(aliases ...string) Field {
	return Field{
		Name:        "numResidents",
		Label:       "Number of residents",
		Description: "The number of residents in the household.",
		Kind:        KindCount,
		Min:         1,
		Max:         100,
		Aliases:     aliases,
		Messages: Messages{
			Required:   "Number of residents is required.",
			TooSmall:   "Number of residents must be at least 1.",
			TooLarge:   "Number of residents seems too high.",
			NotNumber:  "Number of residents must be a number.",
			NotInteger: "Number of residents must be a whole number.",
		},
	}
}

// describeField builds a required free-text field with the short form wording
// used by the carbon and electricity forms.
func describeField(name, label, what, description string) Field {
	tooShort := "Please describe " + what + " (at least 10 characters)."
	return Field{
		Name:        name,
		Label:       label,
		Description: description,
		Kind:        KindText,
		Min:         minDescription,
		Max:         maxDescription,
		Messages: Messages{
			Required: tooShort,
			TooSmall: tooShort,
			TooLarge: "Description too long (max 2000 chars).",
		},
	}
}

// WaterInput is the water saving tips form.
var WaterInput = InputSchema{
	Feature: "water",
	Fields: []Field{
		residentsField(),
		{
			Name:        "waterBillHistory",
			Label:       "Water bill history",
			Description: "A description of the household's water bill history.",
			Kind:        KindText,
			Min:         minDescription,
			Max:         maxDescription,
			Messages: Messages{
				Required: "Please provide some details about your water bill history (at least 10 characters).",
				TooSmall: "Please provide some details about your water bill history (at least 10 characters).",
				TooLarge: "Water bill history is too long (max 2000 characters).",
			},
		},
		{
			Name:        "habits",
			Label:       "Water usage habits",
			Description: "A description of the household's water usage habits.",
			Kind:        KindText,
			Min:         minDescription,
			Max:         maxDescription,
			Messages: Messages{
				Required: "Please describe your household's water usage habits (at least 10 characters).",
				TooSmall: "Please describe your household's water usage habits (at least 10 characters).",
				TooLarge: "Habits description is too long (max 2000 characters).",
			},
		},
	},
}

// CarbonInput is the carbon footprint tips form.
var CarbonInput = InputSchema{
	Feature: "carbon",
	Fields: []Field{
		residentsField("numResidentsCarbon"),
		describeField("electricityUsage", "Electricity usage", "electricity usage",
			"A description of the household's electricity usage."),
		describeField("transportationHabits", "Transportation habits", "transportation habits",
			"A description of the household's transportation habits."),
		describeField("dietaryPreferences", "Dietary preferences", "dietary preferences",
			"A description of the household's dietary preferences."),
		describeField("flyingHabits", "Flying habits", "flying habits",
			"A description of the household's flying habits."),
	},
}

// ElectricityInput is the electricity saving tips form.
var ElectricityInput = InputSchema{
	Feature: "electricity",
	Fields: []Field{
		residentsField("numResidentsElectricity"),
		describeField("applianceDetails", "Appliance details", "appliance details",
			"Details about the household's appliances and how they are used."),
		describeField("heatingCoolingSystem", "Heating and cooling system", "heating/cooling system",
			"A description of the household's heating and cooling system."),
		describeField("lightingHabits", "Lighting habits", "lighting habits",
			"A description of the household's lighting habits."),
		{
			Name:        "renewableEnergySources",
			Label:       "Renewable energy sources",
			Description: "Any renewable energy sources the household uses.",
			Kind:        KindText,
			Optional:    true,
			Max:         maxDescription,
			Messages: Messages{
				TooLarge: "Description too long (max 2000 chars).",
			},
		},
	},
}

// EsgInput is the ESG report assessment form.
var EsgInput = InputSchema{
	Feature: "esg",
	Fields: []Field{
		{
			Name:        "reportText",
			Label:       "Report text",
			Description: "The full text of the ESG report to assess.",
			Kind:        KindText,
			Min:         100,
			Max:         50000,
			Messages: Messages{
				Required: "Report text must be at least 100 characters.",
				TooSmall: "Report text must be at least 100 characters.",
				TooLarge: "Report text cannot exceed 50,000 characters.",
			},
		},
	},
}
