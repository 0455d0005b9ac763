package form

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/freshsense/spoilage-web/internal/domain"
)

// Predictor sends validated readings to the model
type Predictor interface {
	Predict(ctx context.Context, readings domain.Readings) (domain.PredictionResult, error)
}

// State is the controller's position in a submit cycle
type State int

const (
	StateIdle State = iota
	StateValidating
	StateLoading
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateLoading:
		return "loading"
	default:
		return "idle"
	}
}

// Submit outcomes
const (
	OutcomeInvalid = "invalid"
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeStale   = "stale"
)

// Cycle describes how one Submit call ended
type Cycle struct {
	Seq      uint64
	Outcome  string
	Readings domain.Readings
	Result   domain.PredictionResult
	Err      error
	Invalid  []*domain.ValidationError
}

// Controller owns one page's sensor fields and result panel.
// Create one per page load; nothing is shared between instances.
type Controller struct {
	mu sync.Mutex

	fields []*Field
	byID   map[string]*Field
	panel  Panel
	state  State
	bound  bool
	seq    uint64

	predictor  Predictor
	thresholds Thresholds
	log        *zap.Logger
	observer   func(Panel)
	pending    []Panel
}

// Option configures a Controller
type Option func(*Controller)

// WithThresholds overrides the tagging heuristics
func WithThresholds(t Thresholds) Option {
	return func(c *Controller) { c.thresholds = t }
}

// WithLogger sets the controller's logger
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithObserver registers fn to receive every panel change.
// fn runs after the controller's lock is released, in change order.
func WithObserver(fn func(Panel)) Option {
	return func(c *Controller) { c.observer = fn }
}

// New creates a controller with one field per sensor
func New(predictor Predictor, opts ...Option) *Controller {
	c := &Controller{
		byID:       make(map[string]*Field, len(domain.SensorIDs)),
		predictor:  predictor,
		thresholds: DefaultThresholds(),
		log:        zap.NewNop(),
	}
	for _, id := range domain.SensorIDs {
		f := newField(id)
		c.fields = append(c.fields, f)
		c.byID[id] = f
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Field returns the input with the given sensor id, or nil
func (c *Controller) Field(id string) *Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byID[id]
}

// Fields returns the inputs in form order
func (c *Controller) Fields() []*Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Field(nil), c.fields...)
}

// Panel returns the result container's current content
func (c *Controller) Panel() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel
}

// State returns the current submit state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetValues types raw values into the matching inputs; unknown ids are ignored
func (c *Controller) SetValues(values map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range c.fields {
		if v, ok := values[f.ID]; ok {
			f.SetValue(v)
		}
	}
}

// Submit runs one validate, request and render cycle.
// Each cycle takes a sequence number; a response that arrives after a newer
// submit started is discarded and reported as OutcomeStale.
func (c *Controller) Submit(ctx context.Context) Cycle {
	c.mu.Lock()
	c.state = StateValidating
	readings, invalid := c.validateLocked()
	if invalid != nil {
		c.state = StateIdle
		c.unlock()
		return Cycle{Outcome: OutcomeInvalid, Invalid: invalid}
	}

	c.seq++
	seq := c.seq
	c.state = StateLoading
	c.setPanelLocked(Panel{Kind: PanelLoading})
	c.unlock()

	result, err := c.predictor.Predict(ctx, readings)

	c.mu.Lock()
	defer c.unlock()

	cycle := Cycle{Seq: seq, Readings: readings, Result: result, Err: err}
	if seq != c.seq {
		c.log.Debug("discarding stale response", zap.Uint64("seq", seq), zap.Uint64("latest", c.seq))
		cycle.Outcome = OutcomeStale
		return cycle
	}
	c.state = StateIdle

	if err != nil {
		c.log.Warn("prediction request failed", zap.Uint64("seq", seq), zap.Error(err))
		c.showErrorLocked(err.Error())
		cycle.Outcome = OutcomeFailed
		return cycle
	}

	if c.renderLocked(result) {
		cycle.Outcome = OutcomeSuccess
	} else {
		cycle.Outcome = OutcomeFailed
	}
	return cycle
}

func (c *Controller) setPanelLocked(p Panel) {
	c.panel = p
	if c.observer != nil {
		c.pending = append(c.pending, p)
	}
}

// unlock releases c.mu and then notifies the observer of queued panel changes
func (c *Controller) unlock() {
	pending, observer := c.pending, c.observer
	c.pending = nil
	c.mu.Unlock()
	for _, p := range pending {
		observer(p)
	}
}
