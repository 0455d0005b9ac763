package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/freshsense/spoilage-web/internal/domain"
)

// Predictor handles communication with the external spoilage model
type Predictor struct {
	serviceURL string
	httpClient *http.Client
	log        *zap.Logger
}

// NewPredictor creates a new predictor client.
// The client carries no timeout: a request lives as long as the caller's context.
func NewPredictor(serviceURL string, log *zap.Logger) *Predictor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Predictor{
		serviceURL: strings.TrimRight(serviceURL, "/"),
		httpClient: &http.Client{},
		log:        log.Named("predictor"),
	}
}

// Predict posts the validated readings to the model once.
// Non-success statuses and transport failures come back as *domain.RequestError.
func (p *Predictor) Predict(ctx context.Context, readings domain.Readings) (domain.PredictionResult, error) {
	body, err := json.Marshal(readings)
	if err != nil {
		return domain.PredictionResult{}, &domain.RequestError{Err: fmt.Errorf("predictor: failed to marshal request: %w", err)}
	}

	url := p.serviceURL + "/predict"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.PredictionResult{}, &domain.RequestError{Err: fmt.Errorf("predictor: failed to create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return domain.PredictionResult{}, &domain.RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.PredictionResult{}, &domain.RequestError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
		}
	}

	var result domain.PredictionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.PredictionResult{}, &domain.RequestError{Err: fmt.Errorf("predictor: failed to decode response: %w", err)}
	}

	p.log.Debug("prediction received",
		zap.String("label", result.Label),
		zap.Float64("confidence", result.Confidence),
		zap.Float64("prediction", result.Prediction),
	)
	return result, nil
}

// Health checks model service connectivity
func (p *Predictor) Health(ctx context.Context) error {
	url := p.serviceURL + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("predictor: failed to create health request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("predictor: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("predictor: health check returned status %d", resp.StatusCode)
	}

	return nil
}
