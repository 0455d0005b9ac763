package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/freshsense/spoilage-web/internal/domain"
	"github.com/freshsense/spoilage-web/internal/form"
	"github.com/freshsense/spoilage-web/internal/service"
)

// Predictor is the model client used by the handlers
type Predictor interface {
	form.Predictor
	Health(ctx context.Context) error
}

const healthTimeout = 3 * time.Second

// Submission sources
const (
	SourceForm = "form"
	SourceAPI  = "api"
)

// Handler contains all HTTP handlers
type Handler struct {
	predictor   Predictor
	submissions *service.SubmissionService
	thresholds  form.Thresholds
	log         *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(predictor Predictor, submissions *service.SubmissionService, thresholds form.Thresholds, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		predictor:   predictor,
		submissions: submissions,
		thresholds:  thresholds,
		log:         log,
	}
}

// newController builds the per-page form controller
func (h *Handler) newController() *form.Controller {
	return form.New(h.predictor,
		form.WithThresholds(h.thresholds),
		form.WithLogger(h.log.Named("form")),
	)
}

func renderPage(c *fiber.Ctx, ctl *form.Controller) error {
	c.Type("html", "utf-8")
	return ctl.WritePage(c)
}

// Index renders an empty form
func (h *Handler) Index(c *fiber.Ctx) error {
	ctl := h.newController()
	ctl.BindInputs()
	return renderPage(c, ctl)
}

// SubmitForm validates the posted sensor values, asks the model and renders the outcome
func (h *Handler) SubmitForm(c *fiber.Ctx) error {
	ctl := h.newController()
	ctl.SetValues(postedValues(c))
	ctl.BindInputs()

	cycle := ctl.Submit(c.UserContext())
	switch cycle.Outcome {
	case form.OutcomeSuccess, form.OutcomeFailed:
		h.submissions.Record(SourceForm, cycle.Readings, cycle.Result, cycle.Err)
	}

	return renderPage(c, ctl)
}

// Sample renders the form filled with the demonstration record
func (h *Handler) Sample(c *fiber.Ctx) error {
	ctl := h.newController()
	ctl.BindInputs()
	ctl.LoadSample()
	return renderPage(c, ctl)
}

func postedValues(c *fiber.Ctx) map[string]string {
	values := make(map[string]string, len(domain.SensorIDs))
	for _, id := range domain.SensorIDs {
		values[id] = c.FormValue(id)
	}
	return values
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	status := "ok"
	predictorStatus := "ok"
	if err := h.predictor.Health(ctx); err != nil {
		h.log.Warn("predictor unhealthy", zap.Error(err))
		status, predictorStatus = "degraded", "unavailable"
	}
	storeStatus := "ok"
	if err := h.submissions.Health(ctx); err != nil {
		h.log.Warn("submission store unhealthy", zap.Error(err))
		status, storeStatus = "degraded", "unavailable"
	}

	return c.JSON(fiber.Map{
		"status":    status,
		"service":   "spoilage-web",
		"version":   "1.0.0",
		"predictor": predictorStatus,
		"store":     storeStatus,
	})
}

// Features lists the sensors the model requires
func (h *Handler) Features(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"required_features": domain.SensorIDs,
		"value_range":       fmt.Sprintf("%d-%d", domain.MinReading, domain.MaxReading),
	})
}

// Predict validates a JSON body and forwards it to the model
func (h *Handler) Predict(c *fiber.Ctx) error {
	var data map[string]any
	if err := json.Unmarshal(c.Body(), &data); err != nil || len(data) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No input data provided",
		})
	}

	readings, errs := service.ValidatePayload(data)
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Input validation failed",
			"details": errs,
		})
	}

	result, err := h.predictor.Predict(c.UserContext(), readings)
	h.submissions.Record(SourceAPI, readings, result, err)
	if err != nil {
		h.log.Warn("prediction request failed", zap.Error(err))
		status := fiber.StatusBadGateway
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode == 0 {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// GetSubmissions returns the recent submission log
func (h *Handler) GetSubmissions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	data, err := h.submissions.Recent(c.UserContext(), limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch submissions")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}
