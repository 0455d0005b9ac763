package form

// BindInputs wires each input's label to its value: the label is active
// while the input is non-empty. Pre-filled inputs get their state applied
// immediately. Listeners are registered only once per controller.
func (c *Controller) BindInputs() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bound {
		return
	}
	c.bound = true

	for _, f := range c.fields {
		f.OnInput(syncLabel)
		if f.Value != "" {
			f.Dispatch()
		}
	}
}

func syncLabel(f *Field) {
	f.Label.Active = f.Value != ""
}
