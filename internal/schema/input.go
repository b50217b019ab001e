// Package schema holds the typed input and output shapes of every advice
// feature and the rules used to validate them.
package schema

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind is the value type of an input field.
type Kind int

const (
	// KindCount is a whole number, e.g. the number of residents.
	KindCount Kind = iota
	// KindText is free text.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindCount:
		return "count"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Messages are the violation texts shown to the user for one field.
type Messages struct {
	Required   string
	TooSmall   string
	TooLarge   string
	NotNumber  string
	NotInteger string
}

// Field declares one input field and its constraints. For counts Min/Max
// bound the value, for text they bound the trimmed length in characters.
type Field struct {
	Name        string
	Label       string
	Description string
	Kind        Kind
	Optional    bool
	Min         int
	Max         int
	// Aliases are alternative form names accepted for this field.
	Aliases  []string
	Messages Messages
}

// InputSchema is the ordered list of fields for one feature.
type InputSchema struct {
	Feature string
	Fields  []Field
}

// Input is a validated submission keyed by canonical field name. Optional
// fields that were not supplied are absent from the map.
type Input map[string]any

var validate = validator.New()

// Validate checks raw form values against the schema. It returns either a
// complete Input or a non-empty FieldErrors, never both. Errors are keyed by
// the form name the value was submitted under, so an alias gets its own
// errors back.
func (s InputSchema) Validate(raw url.Values) (Input, FieldErrors) {
	input := make(Input, len(s.Fields))
	errs := FieldErrors{}

	for _, f := range s.Fields {
		key, value, present := lookup(raw, f)
		value = strings.TrimSpace(value)

		if !present || value == "" {
			if !f.Optional {
				errs.Add(key, f.Messages.Required)
			}
			continue
		}

		switch f.Kind {
		case KindCount:
			n, msg := checkCount(value, f)
			if msg != "" {
				errs.Add(key, msg)
				continue
			}
			input[f.Name] = n
		case KindText:
			if msg := checkText(value, f); msg != "" {
				errs.Add(key, msg)
				continue
			}
			input[f.Name] = value
		}
	}

	if !errs.Empty() {
		return nil, errs
	}
	return input, nil
}

// lookup finds f by canonical name, then by alias. It returns the key that
// matched, or f.Name when the field is absent.
func lookup(raw url.Values, f Field) (key, value string, present bool) {
	if vals, ok := raw[f.Name]; ok && len(vals) > 0 {
		return f.Name, vals[0], true
	}
	for _, alias := range f.Aliases {
		if vals, ok := raw[alias]; ok && len(vals) > 0 {
			return alias, vals[0], true
		}
	}
	return f.Name, "", false
}

func checkCount(value string, f Field) (int, string) {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, f.Messages.NotNumber
	}
	if n != math.Trunc(n) {
		return 0, f.Messages.NotInteger
	}
	// Clamp before converting so huge values cannot overflow int.
	if n < math.MinInt32 {
		return 0, f.Messages.TooSmall
	}
	if n > math.MaxInt32 {
		return 0, f.Messages.TooLarge
	}
	count := int(n)
	return count, violation(validate.Var(count, fmt.Sprintf("gte=%d,lte=%d", f.Min, f.Max)), f)
}

func checkText(value string, f Field) string {
	tag := fmt.Sprintf("max=%d", f.Max)
	if f.Min > 0 {
		tag = fmt.Sprintf("min=%d,%s", f.Min, tag)
	}
	return violation(validate.Var(value, tag), f)
}

// violation maps a validator failure onto the field's own message.
func violation(err error, f Field) string {
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return f.Messages.Required
	}
	switch verrs[0].Tag() {
	case "min", "gte":
		return f.Messages.TooSmall
	case "max", "lte":
		return f.Messages.TooLarge
	default:
		return f.Messages.Required
	}
}
