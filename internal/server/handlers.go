package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/arpitbiyaniazz/ecooracal/internal/advisor"
	"github.com/arpitbiyaniazz/ecooracal/internal/schema"
	"github.com/arpitbiyaniazz/ecooracal/internal/utility"
	"github.com/labstack/echo/v4"
)

/* ====================================================================
                   		Advice Handlers
==================================================================== */

var errInvalidBody = errors.New("invalid request body")

// adviceResponse is the JSON body returned by every advice route.
type adviceResponse struct {
	Message    string                `json:"message"`
	Success    bool                  `json:"success"`
	Tips       string                `json:"tips,omitempty"`
	Assessment *schema.EsgAssessment `json:"assessment,omitempty"`
	Code       advisor.FailureCode   `json:"code,omitempty"`
	Errors     schema.FieldErrors    `json:"errors,omitempty"`
}

func (s *Server) waterTipsHandler(c echo.Context) error {
	return s.tipsHandler(c, s.advisor.WaterTips)
}

func (s *Server) carbonTipsHandler(c echo.Context) error {
	return s.tipsHandler(c, s.advisor.CarbonTips)
}

func (s *Server) electricityTipsHandler(c echo.Context) error {
	return s.tipsHandler(c, s.advisor.ElectricityTips)
}

type tipsFunc func(ctx context.Context, raw url.Values) advisor.Result[string]

func (s *Server) tipsHandler(c echo.Context, generate tipsFunc) error {
	raw, err := readSubmission(c)
	if err != nil {
		return badRequest(c, err)
	}

	res := generate(c.Request().Context(), raw)
	return c.JSON(statusFor(res.Success, res.Code), adviceResponse{
		Message: res.Message,
		Success: res.Success,
		Tips:    res.Output,
		Code:    res.Code,
		Errors:  res.Errors,
	})
}

func (s *Server) esgAssessmentHandler(c echo.Context) error {
	raw, err := readSubmission(c)
	if err != nil {
		return badRequest(c, err)
	}

	res := s.advisor.AssessEsgRisk(c.Request().Context(), raw)
	return c.JSON(statusFor(res.Success, res.Code), adviceResponse{
		Message:    res.Message,
		Success:    res.Success,
		Assessment: res.Output,
		Code:       res.Code,
		Errors:     res.Errors,
	})
}

// statusFor maps a submission outcome to an HTTP status.
func statusFor(success bool, code advisor.FailureCode) int {
	if success {
		return http.StatusOK
	}
	switch code {
	case advisor.CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case advisor.CodeEmptyResult, advisor.CodeMalformedOutput, advisor.CodeExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c echo.Context, err error) error {
	utility.LoggerFromContext(c).Warn().Err(err).Msg("Could not read submission")
	return c.JSON(http.StatusBadRequest, adviceResponse{
		Message: "Invalid request body.",
		Errors:  schema.FieldErrors{schema.FormKey: {err.Error()}},
	})
}

// readSubmission collects the raw field values from a form post or a flat
// JSON object.
func readSubmission(c echo.Context) (url.Values, error) {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return decodeJSONFields(c.Request().Body)
	}

	values, err := c.FormParams()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return values, nil
}

// decodeJSONFields flattens a JSON object of scalars into form values.
// Numbers keep their literal text; null means "not supplied".
func decodeJSONFields(body io.Reader) (url.Values, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", errInvalidBody)
	}

	values := make(url.Values, len(fields))
	for name, v := range fields {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			values.Set(name, val)
		case json.Number:
			values.Set(name, val.String())
		case bool:
			values.Set(name, fmt.Sprint(val))
		default:
			return nil, fmt.Errorf("%w: field %q must be a string or number", errInvalidBody, name)
		}
	}
	return values, nil
}
