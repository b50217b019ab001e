package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/arpitbiyaniazz/ecooracal/internal/advisor"
	"github.com/arpitbiyaniazz/ecooracal/internal/config"
	"github.com/arpitbiyaniazz/ecooracal/internal/geminiservice"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(_ context.Context, _ geminiservice.Request) (string, error) {
	f.calls++
	return f.reply, f.err
}

func newTestHandler(t *testing.T, gen advisor.Generator) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	s := New(config.ServerConfig{AllowOrigins: []string{"*"}}, Deps{
		Advisor:      advisor.New(gen, advisor.WithMetrics(advisor.NewMetrics(reg))),
		Gatherer:     reg,
		AIConfigured: true,
		Logger:       zerolog.Nop(),
	})
	s.cpuSample = 10 * time.Millisecond
	return s.RegisterRoutes(), reg
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func waterForm() url.Values {
	return url.Values{
		"numResidents":     {"4"},
		"waterBillHistory": {"Around $60 per month"},
		"habits":           {"Long showers, daily garden watering"},
	}
}

func TestWaterTipsRoute_Success(t *testing.T) {
	h, _ := newTestHandler(t, &fakeGenerator{reply: `{"tips":"- Fix leaks"}`})

	rec := postForm(h, "/api/water-tips", waterForm())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "- Fix leaks", body["tips"])
	assert.Equal(t, "Successfully generated water saving tips!", body["message"])
	assert.NotContains(t, body, "errors")
	assert.NotContains(t, body, "code")
}

func TestWaterTipsRoute_ValidationFailure(t *testing.T) {
	gen := &fakeGenerator{reply: `{"tips":"unused"}`}
	h, _ := newTestHandler(t, gen)

	form := waterForm()
	form.Set("numResidents", "0")
	rec := postForm(h, "/api/water-tips", form)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "validation_failed", body["code"])
	errs := body["errors"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Number of residents must be at least 1."}, errs["numResidents"])
	assert.NotContains(t, body, "tips")
	assert.Zero(t, gen.calls)
}

func TestCarbonTipsRoute_JSONBody(t *testing.T) {
	h, _ := newTestHandler(t, &fakeGenerator{reply: `{"tips":"Cycle more"}`})

	rec := postJSON(h, "/api/carbon-tips", `{
		"numResidentsCarbon": 3,
		"electricityUsage": "About 300 kWh per month",
		"transportationHabits": "One petrol car, 40 km a day",
		"dietaryPreferences": "Omnivore, red meat twice a week",
		"flyingHabits": "Two short-haul return flights a year"
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cycle more", decode(t, rec)["tips"])
}

func TestElectricityTipsRoute_ExternalError(t *testing.T) {
	h, _ := newTestHandler(t, &fakeGenerator{err: errors.New("quota exceeded")})

	rec := postForm(h, "/api/electricity-tips", url.Values{
		"numResidents":         {"2"},
		"applianceDetails":     {"Fridge, dishwasher, two TVs"},
		"heatingCoolingSystem": {"Gas boiler and a window AC unit"},
		"lightingHabits":       {"Mostly LED, lights left on at night"},
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "external_service_error", body["code"])
	assert.Equal(t, "Failed to generate electricity saving tips: quota exceeded. Please try again later.", body["message"])
}

func TestEsgAssessmentRoute(t *testing.T) {
	h, _ := newTestHandler(t, &fakeGenerator{reply: `{
		"environmental": {"score": "Medium", "summary": "Some emissions.", "evidence": ["emissions rose"]},
		"social": {"score": "Low", "summary": "Fine.", "evidence": []},
		"governance": {"score": "Not Assessed", "summary": "No data.", "evidence": []},
		"overallSummary": "Moderate risk."
	}`})

	rec := postForm(h, "/api/esg-assessment", url.Values{
		"reportText": {strings.Repeat("Our emissions rose last year. ", 5)},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assessment := body["assessment"].(map[string]interface{})
	assert.Equal(t, "Moderate risk.", assessment["overallSummary"])
	env := assessment["environmental"].(map[string]interface{})
	assert.Equal(t, "Medium", env["score"])
}

func TestEsgAssessmentRoute_EmptyResult(t *testing.T) {
	h, _ := newTestHandler(t, &fakeGenerator{reply: `{
		"environmental": {"score": "Low", "summary": "s", "evidence": []},
		"social": {"score": "Low", "summary": "s", "evidence": []},
		"governance": {"score": "Low", "summary": "s", "evidence": []},
		"overallSummary": ""
	}`})

	rec := postForm(h, "/api/esg-assessment", url.Values{
		"reportText": {strings.Repeat("a", 150)},
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "empty_result", body["code"])
	assert.NotContains(t, body, "assessment")
}

func TestAdviceRoute_BadJSON(t *testing.T) {
	gen := &fakeGenerator{}
	h, _ := newTestHandler(t, gen)

	for _, body := range []string{`{"numResidents":`, `[1,2]`, `{"habits":{"nested":true}}`} {
		rec := postJSON(h, "/api/water-tips", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Zero(t, gen.calls)
}

func TestAdviceRoute_BodyTooLarge(t *testing.T) {
	gen := &fakeGenerator{}
	h, _ := newTestHandler(t, gen)

	rec := postJSON(h, "/api/esg-assessment", `{"reportText":"`+strings.Repeat("a", 300*1024)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, gen.calls)
}

func TestAdviceRoute_LargestValidReport(t *testing.T) {
	gen := &fakeGenerator{reply: `{
		"environmental": {"score": "Low", "summary": "s", "evidence": []},
		"social": {"score": "Low", "summary": "s", "evidence": []},
		"governance": {"score": "Low", "summary": "s", "evidence": []},
		"overallSummary": "Low risk."
	}`}
	h, _ := newTestHandler(t, gen)

	rec := postJSON(h, "/api/esg-assessment", `{"reportText":"`+strings.Repeat("a", 50000)+`"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gen.calls)
}

func TestDecodeJSONFields(t *testing.T) {
	values, err := decodeJSONFields(strings.NewReader(`{"numResidents": 2.0, "habits": "x", "renewableEnergySources": null}`))
	require.NoError(t, err)

	assert.Equal(t, "2.0", values.Get("numResidents"))
	assert.Equal(t, "x", values.Get("habits"))
	_, present := values["renewableEnergySources"]
	assert.False(t, present)
}

func TestHealthRoute(t *testing.T) {
	h, _ := newTestHandler(t, &fakeGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Contains(t, []interface{}{"online", "degraded"}, body["status"])
	assert.Equal(t, true, body["ai_configured"])
	assert.Contains(t, body, "runtime")
}

func TestFeaturesRoute(t *testing.T) {
	h, _ := newTestHandler(t, &fakeGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/api/features", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Features []featureInfo `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Features, 4)
	assert.Equal(t, "/api/water-tips", body.Features[0].Route)
	electricity := body.Features[2]
	assert.Equal(t, "electricity", electricity.Feature)
	last := electricity.Fields[len(electricity.Fields)-1]
	assert.Equal(t, "renewableEnergySources", last.Name)
	assert.True(t, last.Optional)
}

func TestMetricsRoute(t *testing.T) {
	h, _ := newTestHandler(t, &fakeGenerator{reply: `{"tips":"ok"}`})
	postForm(h, "/api/water-tips", waterForm())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ecooracle_submissions_total{feature="water",outcome="success"} 1`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, statusFor(true, ""))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(false, advisor.CodeValidationFailed))
	assert.Equal(t, http.StatusBadGateway, statusFor(false, advisor.CodeMalformedOutput))
	assert.Equal(t, http.StatusInternalServerError, statusFor(false, ""))
}
