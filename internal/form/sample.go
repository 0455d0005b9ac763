package form

import (
	"github.com/freshsense/spoilage-web/internal/domain"
	"github.com/freshsense/spoilage-web/pkg/utils"
)

// LoadSample fills every sensor input with the demonstration record
// and fires their input events. The values are in range by construction.
func (c *Controller) LoadSample() {
	c.mu.Lock()
	defer c.mu.Unlock()

	sample := domain.SampleReadings()
	for _, f := range c.fields {
		if v, ok := sample[f.ID]; ok {
			f.SetValue(utils.FormatNumber(v))
		}
	}
}
