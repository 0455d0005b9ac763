package domain

import (
	"encoding/json"
	"time"
)

// Probabilities holds per-class scores returned by the predictor
type Probabilities struct {
	Fresh   float64 `json:"fresh"`
	Spoiled float64 `json:"spoiled"`
}

// PredictionResult is the predictor's response body.
// A non-empty Error signals an application-level failure despite HTTP success.
type PredictionResult struct {
	Label         string         `json:"label,omitempty"`
	Confidence    float64        `json:"confidence"`
	Prediction    float64        `json:"prediction"`
	Error         string         `json:"error,omitempty"`
	Details       Details        `json:"details,omitempty"`
	Probabilities *Probabilities `json:"probabilities,omitempty"`
	Timestamp     string         `json:"timestamp,omitempty"`
}

// Details carries the predictor's failure details. The model sends either
// a single string or a list of strings; both decode into a list.
type Details []string

func (d *Details) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		if one == "" {
			*d = nil
		} else {
			*d = Details{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*d = many
	return nil
}

// Failed reports whether the predictor answered with an explicit error field
func (r PredictionResult) Failed() bool {
	return r.Error != ""
}

// Outcome values recorded for a submission
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Submission records one completed submit cycle
type Submission struct {
	ID        string           `json:"id"`
	Readings  Readings         `json:"readings"`
	Result    PredictionResult `json:"result"`
	Outcome   string           `json:"outcome"`
	Source    string           `json:"source"`
	CreatedAt time.Time        `json:"created_at"`
}
