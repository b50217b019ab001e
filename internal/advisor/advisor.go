// Package advisor runs the advice features: validate the submission, render
// the prompt, call the model once and check its reply.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/arpitbiyaniazz/ecooracal/internal/geminiservice"
	"github.com/arpitbiyaniazz/ecooracal/internal/schema"
	"github.com/rs/zerolog"
)

// FailureCode classifies why a submission did not succeed.
type FailureCode string

const (
	CodeValidationFailed FailureCode = "validation_failed"
	CodeEmptyResult      FailureCode = "empty_result"
	CodeMalformedOutput  FailureCode = "malformed_output"
	CodeExternalService  FailureCode = "external_service_error"
)

const unknownErrorMessage = "An unknown error occurred."

var errUnknown = errors.New(unknownErrorMessage)

// Generator produces the raw JSON reply for a rendered prompt.
// *geminiservice.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, req geminiservice.Request) (string, error)
}

// Result is the outcome of one submission. Output is only set on success;
// Code and Errors only on failure.
type Result[T any] struct {
	Success bool
	Message string
	Output  T
	Code    FailureCode
	Errors  schema.FieldErrors
}

// Advisor serves the four advice features. It holds no per-request state and
// is safe for concurrent use.
type Advisor struct {
	gen     Generator
	log     zerolog.Logger
	metrics *Metrics
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithLogger sets the logger used when the request context carries none.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Advisor) { a.log = l }
}

// WithMetrics records submission outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(a *Advisor) { a.metrics = m }
}

// New builds an Advisor backed by gen.
func New(gen Generator, opts ...Option) *Advisor {
	a := &Advisor{gen: gen, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WaterTips generates water saving tips for a household.
func (a *Advisor) WaterTips(ctx context.Context, raw url.Values) Result[string] {
	return tipsResult(run(ctx, a, waterFeature, raw))
}

// CarbonTips generates carbon footprint reduction tips for a household.
func (a *Advisor) CarbonTips(ctx context.Context, raw url.Values) Result[string] {
	return tipsResult(run(ctx, a, carbonFeature, raw))
}

// ElectricityTips generates electricity saving tips for a household.
func (a *Advisor) ElectricityTips(ctx context.Context, raw url.Values) Result[string] {
	return tipsResult(run(ctx, a, electricityFeature, raw))
}

// AssessEsgRisk produces an ESG risk scorecard for a corporate report.
func (a *Advisor) AssessEsgRisk(ctx context.Context, raw url.Values) Result[*schema.EsgAssessment] {
	return run(ctx, a, esgFeature, raw)
}

func tipsResult(r Result[*schema.Tips]) Result[string] {
	out := Result[string]{Success: r.Success, Message: r.Message, Code: r.Code, Errors: r.Errors}
	if r.Output != nil {
		out.Output = r.Output.Tips
	}
	return out
}

// run is the single pipeline shared by every feature.
func run[T any](ctx context.Context, a *Advisor, f Feature[T], raw url.Values) (res Result[T]) {
	logger := a.logger(ctx).With().Str("feature", f.Key).Str("operation", f.Operation).Logger()
	start := time.Now()

	defer func() {
		a.record(f.Key, res.Success, res.Code)
		evt := logger.Info()
		if !res.Success {
			evt = logger.Warn().Str("code", string(res.Code))
		}
		evt.Dur("duration", time.Since(start)).Msg("Submission processed")
	}()

	input, fieldErrs := f.Input.Validate(raw)
	if fieldErrs != nil {
		return Result[T]{
			Message: f.Messages.Validation,
			Code:    CodeValidationFailed,
			Errors:  fieldErrs,
		}
	}

	prompt, err := f.Render(input)
	if err != nil {
		logger.Error().Err(err).Msg("Prompt rendering failed")
		return externalFailure[T](f, err)
	}

	genStart := time.Now()
	text, err := a.generate(ctx, geminiservice.Request{
		Operation: f.Operation,
		Prompt:    prompt,
		Schema:    f.Output.Response,
	})
	if a.metrics != nil {
		a.metrics.GenerationDuration.WithLabelValues(f.Key).Observe(time.Since(genStart).Seconds())
	}
	if err != nil {
		logger.Error().Err(err).Msg("AI service error")
		return externalFailure[T](f, err)
	}

	output, err := f.Output.Parse([]byte(text))
	switch {
	case errors.Is(err, schema.ErrEmptyResult):
		return Result[T]{
			Message: f.Messages.Empty,
			Code:    CodeEmptyResult,
			Errors:  schema.FieldErrors{schema.FormKey: {f.Messages.EmptyForm}},
		}
	case errors.Is(err, schema.ErrMalformedOutput):
		logger.Error().Err(err).Int("reply_chars", len(text)).Msg("AI reply did not match the output schema")
		res = externalFailure[T](f, schema.ErrMalformedOutput)
		res.Code = CodeMalformedOutput
		return res
	case err != nil:
		return externalFailure[T](f, err)
	}

	return Result[T]{Success: true, Message: f.Messages.Success, Output: output}
}

// generate calls the model once; a panic inside the generator becomes an error.
func (a *Advisor) generate(ctx context.Context, req geminiservice.Request) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = errUnknown
		}
	}()
	return a.gen.Generate(ctx, req)
}

func externalFailure[T any](f Feature[T], err error) Result[T] {
	msg := err.Error()
	if msg == "" {
		msg = unknownErrorMessage
	}
	return Result[T]{
		Message: fmt.Sprintf("Failed to generate %s: %s. Please try again later.", f.Messages.Subject, msg),
		Code:    CodeExternalService,
		Errors:  schema.FieldErrors{schema.FormKey: {f.Messages.FailureForm, msg}},
	}
}

func (a *Advisor) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.log
}

func (a *Advisor) record(feature string, success bool, code FailureCode) {
	if a.metrics == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = string(code)
	}
	a.metrics.Submissions.WithLabelValues(feature, outcome).Inc()
}
