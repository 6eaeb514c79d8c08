// Package processor handles incoming enrichment batch messages and manages
// per-run state. It is the ingestion layer: batches accumulate into a run's
// shared output map, and a run-completed marker finalizes the run and emits
// its results. The handler is invoked from a single consumer loop, which
// preserves the sequential read-then-write ordering the merge policy
// requires; no locks are needed under that single-writer invariant.
package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/enrich"
	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// runState accumulates one run's output across category batches.
type runState struct {
	out        map[string]*models.Enrichment
	candidates map[string]*models.Candidate
	stats      models.MatchStats
	batches    int
}

// Processor drives the enrichment engine from incoming batch messages.
type Processor struct {
	logger   ectologger.Logger
	engine   *enrich.Engine
	producer *kafka.Producer
	runs     map[string]*runState
}

// NewProcessor creates a new batch message processor. producer may be nil
// when event emission is disabled.
func NewProcessor(logger ectologger.Logger, engine *enrich.Engine, producer *kafka.Producer) *Processor {
	return &Processor{
		logger:   logger,
		engine:   engine,
		producer: producer,
		runs:     make(map[string]*runState),
	}
}

// HandleMessage processes one incoming message: category batches feed the
// engine, a run-completed marker finalizes the run.
func (p *Processor) HandleMessage(ctx context.Context, msg *kafka.IncomingMessage) error {
	ctx, span := tracing.StartSpan(ctx, "processor.Processor.HandleMessage")
	defer span.End()

	switch {
	case msg.Batch != nil:
		return p.handleBatch(ctx, msg.Batch)
	case msg.RunCompleted != nil:
		return p.finalizeRun(ctx, msg.RunCompleted.RunID)
	default:
		return fmt.Errorf("message carries neither batch nor completion marker")
	}
}

func (p *Processor) handleBatch(ctx context.Context, batch *kafka.BatchMessage) error {
	ctx, span := tracing.StartSpan(ctx, "processor.Processor.handleBatch")
	defer span.End()

	if batch.RunID == "" {
		return fmt.Errorf("batch message missing run_id")
	}

	log := p.logger.WithContext(ctx).WithFields(map[string]any{
		"run_id":   batch.RunID,
		"category": batch.Category,
		"registry": len(batch.Registry),
		"listings": len(batch.Listings),
	})

	state, ok := p.runs[batch.RunID]
	if !ok {
		state = &runState{
			out:        make(map[string]*models.Enrichment),
			candidates: make(map[string]*models.Candidate),
		}
		p.runs[batch.RunID] = state
	}

	index := p.engine.BuildIndex(ctx, batch.Registry)
	p.engine.ApplyListings(ctx, index, batch.Listings, state.out, &state.stats)
	for license, cand := range index.ByLicense() {
		state.candidates[license] = cand
	}
	state.batches++

	log.WithFields(map[string]any{
		"matched":   state.stats.Matched,
		"ambiguous": state.stats.Ambiguous,
	}).Info("Applied enrichment batch")
	return nil
}

func (p *Processor) finalizeRun(ctx context.Context, runID string) error {
	ctx, span := tracing.StartSpan(ctx, "processor.Processor.finalizeRun")
	defer span.End()

	log := p.logger.WithContext(ctx).WithFields(map[string]any{
		"run_id":   runID,
		"trace_id": tracing.GetTraceID(ctx),
	})

	state, ok := p.runs[runID]
	if !ok {
		// A completion marker for an unknown run is not fatal; the batches
		// may have been consumed by an earlier incarnation.
		log.Warn("Completion marker for unknown run")
		return nil
	}

	p.engine.ApplyDeclaredNames(ctx, state.candidates, state.out, &state.stats)

	generatedAt := time.Now().UTC()

	if p.producer != nil {
		for license, enrichment := range state.out {
			event := &kafka.EnrichmentEvent{
				RunID:         runID,
				LicenseNumber: license,
				Enrichment:    enrichment,
			}
			if err := p.producer.PublishEnrichment(ctx, event); err != nil {
				return fmt.Errorf("failed to publish enrichment for %s: %w", license, err)
			}
		}

		summary := &kafka.RunSummaryEvent{
			RunID:       runID,
			GeneratedAt: generatedAt,
			Matched:     state.stats.Matched,
			Ambiguous:   state.stats.Ambiguous,
			DBAOnly:     state.stats.DeclaredNameOnly,
			RecordCount: len(state.out),
		}
		if err := p.producer.PublishRunSummary(ctx, summary); err != nil {
			return fmt.Errorf("failed to publish run summary: %w", err)
		}
	}

	delete(p.runs, runID)

	log.WithFields(map[string]any{
		"batches":   state.batches,
		"matched":   state.stats.Matched,
		"ambiguous": state.stats.Ambiguous,
		"dba_only":  state.stats.DeclaredNameOnly,
		"records":   len(state.out),
	}).Info("Finalized enrichment run")
	return nil
}
