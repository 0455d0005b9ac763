package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshsense/spoilage-web/internal/domain"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{w: w}

	sub := domain.Submission{
		ID:        "abc",
		Readings:  domain.SampleReadings(),
		Result:    domain.PredictionResult{Label: "Fresh", Confidence: 0.9},
		Outcome:   domain.OutcomeSuccess,
		Source:    "form",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), sub))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "abc", string(msg.Key))
	assert.Equal(t, sub.CreatedAt, msg.Time)

	var decoded domain.Submission
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "Fresh", decoded.Result.Label)
	assert.Equal(t, 320.0, decoded.Readings["MQ8A"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{w: &recordingWriter{err: errors.New("broker down")}}
	err := p.Publish(context.Background(), domain.Submission{ID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}
