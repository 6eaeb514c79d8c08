package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ramsey-B/fern/pkg/models"
)

// Message types carried on the enrichment batch topic.
const (
	MessageTypeCategoryBatch = "category_batch"
	MessageTypeRunCompleted  = "run_completed"
)

// BatchMessage carries one professional category's registry extract and
// scraped listings for an enrichment run.
type BatchMessage struct {
	Type     string                  `json:"type"`
	RunID    string                  `json:"run_id"`
	Category string                  `json:"category"`
	Registry []models.RegistryRecord `json:"registry"`
	Listings []models.Listing        `json:"listings"`
}

// RunCompletedMessage marks the end of a run's batches; receiving it
// triggers finalization of the run state.
type RunCompletedMessage struct {
	Type  string `json:"type"`
	RunID string `json:"run_id"`
}

// IncomingMessage wraps a raw Kafka message with parsed headers
type IncomingMessage struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Partition int
	Offset    int64
	Timestamp time.Time
	Topic     string

	// Parsed content
	Batch        *BatchMessage
	RunCompleted *RunCompletedMessage
}

// Parse decodes the message value. Messages without a type field are
// treated as category batches for compatibility with older producers.
func (m *IncomingMessage) Parse() error {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(m.Value, &envelope); err != nil {
		return err
	}

	switch envelope.Type {
	case MessageTypeRunCompleted:
		var msg RunCompletedMessage
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			return err
		}
		m.RunCompleted = &msg
	case MessageTypeCategoryBatch, "":
		var msg BatchMessage
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			return err
		}
		m.Batch = &msg
	default:
		return fmt.Errorf("unknown message type %q", envelope.Type)
	}
	return nil
}

// GetRunID returns the run ID from the parsed message, falling back to the
// run_id header.
func (m *IncomingMessage) GetRunID() string {
	if m.Batch != nil && m.Batch.RunID != "" {
		return m.Batch.RunID
	}
	if m.RunCompleted != nil && m.RunCompleted.RunID != "" {
		return m.RunCompleted.RunID
	}
	return m.Headers["run_id"]
}

// GetCategory returns the professional category for batch messages.
func (m *IncomingMessage) GetCategory() string {
	if m.Batch != nil {
		return m.Batch.Category
	}
	return ""
}
