// Package kafka publishes analysis lifecycle events so downstream consumers
// (notification fan-out, audit trails) can react without polling the API.
package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/piyushjha0409/DockAI/pkg/types/common"
)

// TopicAnalysisCompleted carries one event per successfully stored analysis.
const TopicAnalysisCompleted = "dockai.analysis.completed"

// EventEnvelope is the common wrapper for all published events.
type EventEnvelope struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AnalysisCompletedPayload is the payload of TopicAnalysisCompleted events.
type AnalysisCompletedPayload struct {
	AnalysisID          common.ID `json:"analysis_id"`
	ScoreFilename       string    `json:"score_filename"`
	StructureFilename   string    `json:"structure_filename"`
	BestBindingAffinity float64   `json:"best_binding_affinity"`
	ModelCount          int       `json:"model_count"`
}

// NewEnvelope wraps a payload in a freshly stamped envelope.
func NewEnvelope(eventType string, payload interface{}) EventEnvelope {
	return EventEnvelope{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
