package form

// Thresholds drive the cosmetic tagging of inputs after a prediction.
// The defaults are the hard-coded heuristics the form has always used.
type Thresholds struct {
	Prediction     float64 // above: spoiled, at or below: fresh
	SpoiledDanger  float64
	SpoiledWarning float64
	FreshDanger    float64
	FreshWarning   float64
}

// DefaultThresholds returns the stock tagging heuristics
func DefaultThresholds() Thresholds {
	return Thresholds{
		Prediction:     0.5,
		SpoiledDanger:  700,
		SpoiledWarning: 400,
		FreshDanger:    100,
		FreshWarning:   300,
	}
}

// Tag returns the visual class for an input value under the given prediction.
// An empty result means the input gets no tag.
func (t Thresholds) Tag(value, prediction float64) string {
	if prediction > t.Prediction {
		switch {
		case value > t.SpoiledDanger:
			return ClassDanger
		case value > t.SpoiledWarning:
			return ClassWarning
		}
		return ""
	}

	switch {
	case value < t.FreshDanger:
		return ClassDanger
	case value < t.FreshWarning:
		return ClassWarning
	default:
		return ClassNormal
	}
}
