package form

import (
	"fmt"

	"github.com/freshsense/spoilage-web/internal/domain"
	"github.com/freshsense/spoilage-web/pkg/utils"
)

// Render shows a prediction response. A response carrying an error field
// goes to the error path. Returns true when a result card was rendered.
func (c *Controller) Render(result domain.PredictionResult) bool {
	c.mu.Lock()
	defer c.unlock()
	return c.renderLocked(result)
}

func (c *Controller) renderLocked(result domain.PredictionResult) bool {
	if result.Failed() {
		c.showErrorLocked(result.Error)
		return false
	}

	c.setPanelLocked(Panel{
		Kind: PanelResult,
		Card: &ResultCard{
			Label:       result.Label,
			StatusClass: statusClass(result.Label),
			Confidence:  fmt.Sprintf("%.1f%%", result.Confidence*100),
			Prediction:  utils.FormatNumber(result.Prediction),
		},
	})
	c.tagInputsLocked(result.Prediction)
	return true
}

// tagInputsLocked highlights inputs according to the prediction; cosmetic only
func (c *Controller) tagInputsLocked(prediction float64) {
	for _, f := range c.fields {
		f.RemoveClass(ClassNormal, ClassWarning, ClassDanger)
		if tag := c.thresholds.Tag(f.Number(), prediction); tag != "" {
			f.AddClass(tag)
		}
	}
}

// ShowError replaces the result panel with a warning message and the input hint
func (c *Controller) ShowError(messages ...string) {
	c.mu.Lock()
	defer c.unlock()
	c.showErrorLocked(messages...)
}

func (c *Controller) showErrorLocked(messages ...string) {
	c.setPanelLocked(Panel{Kind: PanelError, Messages: messages})
}
