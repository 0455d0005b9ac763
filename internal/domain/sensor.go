package domain

// Sensor value bounds reported by the MQ gas sensors (10-bit ADC).
const (
	MinReading = 0
	MaxReading = 1023
)

// SensorIDs lists the gas-sensor channels in form order
var SensorIDs = []string{"MQ8A", "MQ135A", "MQ9A", "MQ4A", "MQ2A", "MQ3A"}

// Readings maps a sensor identifier to its validated value
type Readings map[string]float64

// SampleReadings is the demonstration record used by the sample loader
func SampleReadings() Readings {
	return Readings{
		"MQ8A":   320,
		"MQ135A": 450,
		"MQ9A":   410,
		"MQ4A":   390,
		"MQ2A":   470,
		"MQ3A":   510,
	}
}

// InRange reports whether v lies in [MinReading, MaxReading]
func InRange(v float64) bool {
	return v >= MinReading && v <= MaxReading
}
