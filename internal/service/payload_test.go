package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() map[string]any {
	return map[string]any{
		"MQ8A": 320.0, "MQ135A": 450.0, "MQ9A": 410.0,
		"MQ4A": 390.0, "MQ2A": 470.0, "MQ3A": 510.0,
	}
}

func TestValidatePayload_OK(t *testing.T) {
	data := samplePayload()
	data["MQ3A"] = "510"

	readings, errs := ValidatePayload(data)
	require.Empty(t, errs)
	assert.Equal(t, 510.0, readings["MQ3A"])
	assert.Len(t, readings, 6)
}

func TestValidatePayload_Errors(t *testing.T) {
	data := samplePayload()
	delete(data, "MQ9A")
	delete(data, "MQ2A")
	data["MQ8A"] = 2000.0
	data["MQ4A"] = "lots"
	data["MQ3A"] = nil

	readings, errs := ValidatePayload(data)
	assert.Nil(t, readings)
	assert.Equal(t, []string{
		"Missing features: MQ9A, MQ2A",
		"MQ8A value 2000 out of range (0-1023)",
		"Invalid value for MQ4A: lots",
		"Invalid value for MQ3A: <nil>",
	}, errs)
}
