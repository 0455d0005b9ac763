package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/freshsense/spoilage-web/internal/domain"
)

// ValidatePayload checks a decoded JSON body before it is forwarded to the model.
// It reports missing sensors, values that are not numbers and values outside the sensor range.
func ValidatePayload(data map[string]any) (domain.Readings, []string) {
	var errs []string

	var missing []string
	for _, id := range domain.SensorIDs {
		if _, ok := data[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, "Missing features: "+strings.Join(missing, ", "))
	}

	readings := make(domain.Readings, len(domain.SensorIDs))
	for _, id := range domain.SensorIDs {
		raw, ok := data[id]
		if !ok {
			continue
		}
		v, ok := toFloat(raw)
		if !ok {
			errs = append(errs, fmt.Sprintf("Invalid value for %s: %v", id, raw))
			continue
		}
		if !domain.InRange(v) {
			errs = append(errs, fmt.Sprintf("%s value %s out of range (%d-%d)",
				id, strconv.FormatFloat(v, 'f', -1, 64), domain.MinReading, domain.MaxReading))
			continue
		}
		readings[id] = v
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return readings, nil
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
