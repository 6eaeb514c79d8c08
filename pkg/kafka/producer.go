package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Producer handles Kafka event emission
type Producer struct {
	writer *kafka.Writer
	logger ectologger.Logger
	topic  string
}

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg ProducerConfig, logger ectologger.Logger) *Producer {
	compression := kafka.Snappy
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "none":
		compression = 0
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		Compression:            compression,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		topic:  cfg.Topic,
	}
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// EnrichmentEvent carries one merged profile for downstream consumers.
type EnrichmentEvent struct {
	EventType     string             `json:"event_type"` // enriched
	RunID         string             `json:"run_id"`
	LicenseNumber string             `json:"license_number"`
	Enrichment    *models.Enrichment `json:"enrichment"`
	Timestamp     time.Time          `json:"timestamp"`
}

// RunSummaryEvent announces a finalized run with its counters.
type RunSummaryEvent struct {
	EventType   string    `json:"event_type"` // run_completed
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Matched     int       `json:"matched"`
	Ambiguous   int       `json:"ambiguous"`
	DBAOnly     int       `json:"dba_only"`
	RecordCount int       `json:"record_count"`
	Timestamp   time.Time `json:"timestamp"`
}

// PublishEnrichment publishes a per-license enrichment event, keyed by
// license number so all events for one professional land in order.
func (p *Producer) PublishEnrichment(ctx context.Context, event *EnrichmentEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishEnrichment")
	defer span.End()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.EventType == "" {
		event.EventType = "enriched"
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.LicenseNumber),
		Value: data,
	}
	if tp := tracing.GetTraceParent(ctx); tp != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "traceparent", Value: []byte(tp)})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"license_number": event.LicenseNumber,
			"run_id":         event.RunID,
		}).Error("Failed to publish enrichment event")
		return err
	}
	return nil
}

// PublishRunSummary publishes the summary envelope for a finalized run.
func (p *Producer) PublishRunSummary(ctx context.Context, event *RunSummaryEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishRunSummary")
	defer span.End()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.EventType == "" {
		event.EventType = "run_completed"
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.RunID),
		Value: data,
	}
	if tp := tracing.GetTraceParent(ctx); tp != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "traceparent", Value: []byte(tp)})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"run_id": event.RunID,
		}).Error("Failed to publish run summary event")
		return err
	}
	return nil
}
