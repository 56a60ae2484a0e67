package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/piyushjha0409/DockAI/internal/config"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/logging"
	"github.com/piyushjha0409/DockAI/pkg/errors"
)

// Publisher emits analysis lifecycle events.  Implementations must be safe
// for concurrent use.
type Publisher interface {
	PublishAnalysisCompleted(ctx context.Context, payload AnalysisCompletedPayload) error
	Close() error
}

// messageWriter is the subset of kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes events to Kafka.  Messages are keyed by analysis id so
// events of one analysis stay ordered within a partition.
type Producer struct {
	writer messageWriter
	log    logging.Logger
}

// NewProducer constructs a Producer according to cfg.
func NewProducer(cfg config.KafkaConfig, log logging.Logger) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		WriteTimeout: cfg.WriteTimeout,
		MaxAttempts:  cfg.MaxRetries,
		RequiredAcks: kafka.RequireOne,
	}
	return newProducer(w, log)
}

func newProducer(w messageWriter, log logging.Logger) *Producer {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Producer{writer: w, log: log.Named("kafka-producer")}
}

// PublishAnalysisCompleted emits one TopicAnalysisCompleted event.
func (p *Producer) PublishAnalysisCompleted(ctx context.Context, payload AnalysisCompletedPayload) error {
	env := NewEnvelope(TopicAnalysisCompleted, payload)
	raw, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event")
	}
	msg := kafka.Message{
		Topic: TopicAnalysisCompleted,
		Key:   []byte(payload.AnalysisID),
		Value: raw,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, errors.ErrCodeMessagingError, "failed to publish event")
	}
	p.log.Debug("event published",
		logging.String("topic", TopicAnalysisCompleted),
		logging.String("analysis_id", string(payload.AnalysisID)),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// NopPublisher satisfies Publisher while discarding every event.  It is used
// when Kafka is disabled in configuration.
type NopPublisher struct{}

func (NopPublisher) PublishAnalysisCompleted(context.Context, AnalysisCompletedPayload) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
