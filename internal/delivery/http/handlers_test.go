package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshsense/spoilage-web/internal/domain"
	"github.com/freshsense/spoilage-web/internal/form"
	"github.com/freshsense/spoilage-web/internal/repository/postgres"
	"github.com/freshsense/spoilage-web/internal/service"
)

type fakePredictor struct {
	mu        sync.Mutex
	result    domain.PredictionResult
	err       error
	healthErr error
	calls     []domain.Readings
}

func (f *fakePredictor) Predict(_ context.Context, r domain.Readings) (domain.PredictionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r)
	return f.result, f.err
}

func (f *fakePredictor) Health(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.healthErr
}

func (f *fakePredictor) setErrors(err, healthErr error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err, f.healthErr = err, healthErr
}

func (f *fakePredictor) recorded() []domain.Readings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Readings(nil), f.calls...)
}

func newTestApp(t *testing.T, pred *fakePredictor) (*fiber.App, *service.SubmissionService) {
	t.Helper()
	subs := service.NewSubmissionService(postgres.NewMockRepository(), nil, nil)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRoutes(app, NewHandler(pred, subs, form.DefaultThresholds(), nil))
	return app, subs
}

func sampleForm() url.Values {
	v := url.Values{}
	for id, n := range domain.SampleReadings() {
		v.Set(id, strconv.FormatFloat(n, 'f', -1, 64))
	}
	return v
}

func do(t *testing.T, app *fiber.App, method, target, contentType, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestIndex(t *testing.T) {
	app, _ := newTestApp(t, &fakePredictor{})

	code, body := do(t, app, "GET", "/", "", "")
	assert.Equal(t, 200, code)
	assert.Contains(t, body, `id="spoilage-form"`)
	for _, id := range domain.SensorIDs {
		assert.Contains(t, body, `id="`+id+`"`)
	}
	assert.Contains(t, body, `<div id="result"></div>`)
	assert.NotContains(t, body, `<div class="result-card`)
}

func TestSample(t *testing.T) {
	app, _ := newTestApp(t, &fakePredictor{})

	code, body := do(t, app, "POST", "/sample", "", "")
	assert.Equal(t, 200, code)
	assert.Contains(t, body, `value="320"`)
	assert.Contains(t, body, `value="510"`)
	assert.Contains(t, body, `class="active"`)
}

func TestSubmitForm_Success(t *testing.T) {
	pred := &fakePredictor{result: domain.PredictionResult{Label: "Spoiled", Confidence: 0.82, Prediction: 0.91}}
	app, subs := newTestApp(t, pred)

	code, body := do(t, app, "POST", "/", fiber.MIMEApplicationForm, sampleForm().Encode())
	assert.Equal(t, 200, code)
	assert.Contains(t, body, `result-card spoiled`)
	assert.Contains(t, body, "Confidence: 82.0%")
	calls := pred.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.SampleReadings(), calls[0])

	subs.WaitBackground()
	recent, err := subs.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, SourceForm, recent[0].Source)
}

func TestSubmitForm_Invalid(t *testing.T) {
	pred := &fakePredictor{}
	app, subs := newTestApp(t, pred)

	values := sampleForm()
	values.Set("MQ9A", "5000")
	code, body := do(t, app, "POST", "/", fiber.MIMEApplicationForm, values.Encode())
	assert.Equal(t, 200, code)
	assert.Contains(t, body, "MQ9A must be between 0-1023")
	assert.Contains(t, body, `class="invalid"`)
	assert.Empty(t, pred.recorded())

	subs.WaitBackground()
	recent, _ := subs.Recent(context.Background(), 10)
	assert.Empty(t, recent)
}

func TestSubmitForm_RequestError(t *testing.T) {
	pred := &fakePredictor{err: &domain.RequestError{StatusCode: 500, Message: "HTTP error! status: 500"}}
	app, _ := newTestApp(t, pred)

	code, body := do(t, app, "POST", "/", fiber.MIMEApplicationForm, sampleForm().Encode())
	assert.Equal(t, 200, code)
	assert.Contains(t, body, "HTTP error! status: 500")
	assert.Contains(t, body, form.ErrorHint)
}

func TestHealthCheck(t *testing.T) {
	pred := &fakePredictor{}
	app, _ := newTestApp(t, pred)

	_, body := do(t, app, "GET", "/health", "", "")
	assert.Contains(t, body, `"status":"ok"`)

	pred.setErrors(nil, errors.New("down"))
	_, body = do(t, app, "GET", "/health", "", "")
	assert.Contains(t, body, `"status":"degraded"`)
	assert.Contains(t, body, `"predictor":"unavailable"`)
}

func TestFeatures(t *testing.T) {
	app, _ := newTestApp(t, &fakePredictor{})

	_, body := do(t, app, "GET", "/api/v1/features", "", "")
	var got struct {
		Required []string `json:"required_features"`
		Range    string   `json:"value_range"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, domain.SensorIDs, got.Required)
	assert.Equal(t, "0-1023", got.Range)
}

func TestPredictAPI(t *testing.T) {
	pred := &fakePredictor{result: domain.PredictionResult{Label: "Fresh", Confidence: 0.7, Prediction: 0}}
	app, subs := newTestApp(t, pred)

	code, body := do(t, app, "POST", "/api/v1/predict", fiber.MIMEApplicationJSON,
		`{"MQ8A":320,"MQ135A":450,"MQ9A":410,"MQ4A":390,"MQ2A":470,"MQ3A":510}`)
	assert.Equal(t, 200, code)
	assert.Contains(t, body, `"label":"Fresh"`)

	subs.WaitBackground()
	code, body = do(t, app, "GET", "/api/v1/submissions?limit=5", "", "")
	assert.Equal(t, 200, code)
	assert.Contains(t, body, `"count":1`)
	assert.Contains(t, body, `"source":"api"`)
}

func TestPredictAPI_Validation(t *testing.T) {
	pred := &fakePredictor{}
	app, _ := newTestApp(t, pred)

	code, body := do(t, app, "POST", "/api/v1/predict", fiber.MIMEApplicationJSON, `{"MQ8A":2000}`)
	assert.Equal(t, 400, code)
	assert.Contains(t, body, "Input validation failed")
	assert.Contains(t, body, "Missing features")
	assert.Empty(t, pred.recorded())

	code, body = do(t, app, "POST", "/api/v1/predict", fiber.MIMEApplicationJSON, ``)
	assert.Equal(t, 400, code)
	assert.Contains(t, body, "No input data provided")
}

func TestPredictAPI_UpstreamFailure(t *testing.T) {
	pred := &fakePredictor{err: &domain.RequestError{StatusCode: 503, Message: "HTTP error! status: 503"}}
	app, _ := newTestApp(t, pred)

	code, body := do(t, app, "POST", "/api/v1/predict", fiber.MIMEApplicationJSON,
		`{"MQ8A":1,"MQ135A":1,"MQ9A":1,"MQ4A":1,"MQ2A":1,"MQ3A":1}`)
	assert.Equal(t, 502, code)
	assert.Contains(t, body, "HTTP error! status: 503")

	pred.setErrors(&domain.RequestError{Err: errors.New("connection refused")}, nil)
	code, _ = do(t, app, "POST", "/api/v1/predict", fiber.MIMEApplicationJSON,
		`{"MQ8A":1,"MQ135A":1,"MQ9A":1,"MQ4A":1,"MQ2A":1,"MQ3A":1}`)
	assert.Equal(t, 503, code)
}
