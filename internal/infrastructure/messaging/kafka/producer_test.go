package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/piyushjha0409/DockAI/pkg/errors"
	"github.com/piyushjha0409/DockAI/pkg/types/common"
)

type fakeWriter struct {
	messages []kafka.Message
	writeErr error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.writeErr != nil {
		return w.writeErr
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducerPublishAnalysisCompleted(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, nil)

	payload := AnalysisCompletedPayload{
		AnalysisID:          common.ID("a1"),
		ScoreFilename:       "scores.txt",
		StructureFilename:   "poses.pdbqt",
		BestBindingAffinity: -7.2,
		ModelCount:          2,
	}
	require.NoError(t, p.PublishAnalysisCompleted(context.Background(), payload))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, TopicAnalysisCompleted, msg.Topic)
	assert.Equal(t, []byte("a1"), msg.Key, "messages must be keyed by analysis id")

	var env EventEnvelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, TopicAnalysisCompleted, env.EventType)
	assert.NotEmpty(t, env.EventID)
	assert.False(t, env.Timestamp.IsZero())

	got, ok := env.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a1", got["analysis_id"])
	assert.Equal(t, -7.2, got["best_binding_affinity"])
	assert.Equal(t, float64(2), got["model_count"])
}

func TestProducerPublishError(t *testing.T) {
	w := &fakeWriter{writeErr: errors.New("broker unreachable")}
	p := newProducer(w, nil)

	err := p.PublishAnalysisCompleted(context.Background(), AnalysisCompletedPayload{AnalysisID: common.ID("a1")})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeMessagingError))
}

func TestProducerClose(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, nil)
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishAnalysisCompleted(context.Background(), AnalysisCompletedPayload{}))
	assert.NoError(t, p.Close())
}
