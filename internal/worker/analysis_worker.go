package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/simcheck/detection-service/internal/models"
	"github.com/simcheck/detection-service/internal/service"
	"github.com/simcheck/detection-service/internal/worker/queue"
)

type AnalysisWorker interface {
	Start(ctx context.Context) error
	Stop() error
	GetStats() WorkerStats
}

type WorkerStats struct {
	ProcessedToday int `json:"processed_today"`
	TotalProcessed int `json:"total_processed"`
	FailedRuns     int `json:"failed_runs"`
	QueueLength    int `json:"queue_length"`
	PendingTasks   int `json:"pending_tasks"`
}

type analysisWorker struct {
	workerPool       *WorkerPool
	queueConsumer    queue.RabbitMQConsumer
	detectionService service.DetectionService
	logger           zerolog.Logger
	stats            WorkerStats
	statsMutex       sync.RWMutex
	startTime        time.Time
}

func NewAnalysisWorker(
	workerPool *WorkerPool,
	queueConsumer queue.RabbitMQConsumer,
	detectionService service.DetectionService,
	logger zerolog.Logger,
) AnalysisWorker {
	return &analysisWorker{
		workerPool:       workerPool,
		queueConsumer:    queueConsumer,
		detectionService: detectionService,
		logger:           logger,
		stats:            WorkerStats{},
		startTime:        time.Now(),
	}
}

func (w *analysisWorker) Start(ctx context.Context) error {
	w.logger.Info().Msg("Starting analysis worker...")

	if err := w.workerPool.Start(ctx); err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}

	msgs, err := w.queueConsumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to start consuming messages: %w", err)
	}

	go w.processMessages(ctx, msgs)

	w.logger.Info().Msg("Analysis worker started successfully")
	return nil
}

func (w *analysisWorker) Stop() error {
	w.logger.Info().Msg("Stopping analysis worker...")

	if err := w.workerPool.Stop(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to stop worker pool")
	}

	if err := w.queueConsumer.Close(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to close queue consumer")
	}

	w.logger.Info().
		Int("total_processed", w.stats.TotalProcessed).
		Int("failed_runs", w.stats.FailedRuns).
		Dur("uptime", time.Since(w.startTime)).
		Msg("Analysis worker stopped")

	return nil
}

func (w *analysisWorker) processMessages(ctx context.Context, msgs <-chan queue.RabbitMQMessage) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Stopping message processing")
			return
		case msg, ok := <-msgs:
			if !ok {
				w.logger.Warn().Msg("Message channel closed")
				return
			}

			w.workerPool.Submit(func() {
				if err := w.processMessage(ctx, msg); err != nil {
					w.logger.Error().Err(err).Msg("Failed to process message")

					w.statsMutex.Lock()
					w.stats.FailedRuns++
					w.statsMutex.Unlock()

					// Malformed or invalid requests can never succeed, so
					// they are acked instead of requeued forever.
					if isPermanentError(err) {
						if ackErr := msg.Ack(false); ackErr != nil {
							w.logger.Error().Err(ackErr).Msg("Failed to ack message")
						}
						return
					}

					if nackErr := msg.Nack(false, true); nackErr != nil {
						w.logger.Error().Err(nackErr).Msg("Failed to nack message")
					}
				} else {
					if err := msg.Ack(false); err != nil {
						w.logger.Error().Err(err).Msg("Failed to ack message")
					}

					w.statsMutex.Lock()
					w.stats.TotalProcessed++
					if time.Since(msg.Timestamp).Hours() < 24 {
						w.stats.ProcessedToday++
					}
					w.statsMutex.Unlock()
				}
			})
		}
	}
}

func (w *analysisWorker) processMessage(ctx context.Context, msg queue.RabbitMQMessage) error {
	var event models.AnalysisRequestedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return permanent(fmt.Errorf("failed to unmarshal event: %w", err))
	}

	if strings.TrimSpace(event.RunID) == "" {
		return permanent(errors.New("empty run_id"))
	}
	if event.Threshold < 0 || event.Threshold > 1 {
		return permanent(fmt.Errorf("threshold out of range: %v", event.Threshold))
	}

	w.logger.Info().
		Str("run_id", event.RunID).
		Int("document_ids", len(event.DocumentIDs)).
		Float64("threshold", event.Threshold).
		Msg("Processing analysis run")

	if err := w.detectionService.RunAnalysis(ctx, event); err != nil {
		if errors.Is(err, service.ErrTooManyDocuments) {
			return permanent(err)
		}
		return err
	}

	return nil
}

func (w *analysisWorker) GetStats() WorkerStats {
	w.statsMutex.RLock()
	defer w.statsMutex.RUnlock()

	stats := w.stats

	queueLength, err := w.queueConsumer.GetQueueLength()
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to get queue length")
	} else {
		stats.QueueLength = queueLength
	}

	stats.PendingTasks = w.workerPool.QueueLength()

	return stats
}

type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	return permanentError{err: err}
}

func isPermanentError(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}
