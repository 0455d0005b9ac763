package form

import (
	"math"

	"github.com/freshsense/spoilage-web/internal/domain"
)

// Validate checks every input and returns the readings when all pass.
// Failing inputs are marked invalid and every failure is shown in the
// result panel; readings are nil if anything failed.
func (c *Controller) Validate() (domain.Readings, []*domain.ValidationError) {
	c.mu.Lock()
	defer c.unlock()
	return c.validateLocked()
}

func (c *Controller) validateLocked() (domain.Readings, []*domain.ValidationError) {
	readings := make(domain.Readings, len(c.fields))
	var invalid []*domain.ValidationError

	for _, f := range c.fields {
		v := f.Number()
		if math.IsNaN(v) || !domain.InRange(v) {
			invalid = append(invalid, domain.NewRangeError(f.ID))
			f.AddClass(ClassInvalid)
			continue
		}
		readings[f.ID] = v
		f.RemoveClass(ClassInvalid)
	}

	if len(invalid) > 0 {
		msgs := make([]string, len(invalid))
		for i, e := range invalid {
			msgs[i] = e.Reason
		}
		c.showErrorLocked(msgs...)
		return nil, invalid
	}
	return readings, nil
}
