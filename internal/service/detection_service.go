package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/simcheck/detection-service/internal/models"
	"github.com/simcheck/detection-service/internal/repository"
	"github.com/simcheck/detection-service/internal/service/analyzer"
	"github.com/simcheck/detection-service/internal/worker/queue"
	"github.com/simcheck/detection-service/pkg/utils"
)

const (
	RoutingKeyDocumentAdded     = "document.added"
	RoutingKeyAnalysisRequested = "analysis.requested"
	RoutingKeyAnalysisCompleted = "analysis.completed"
	RoutingKeyAnalysisFailed    = "analysis.failed"
)

var (
	ErrTooManyDocuments  = errors.New("document count exceeds limit")
	ErrContentTooLarge   = errors.New("document content exceeds limit")
	ErrEmptyDocumentName = errors.New("document name is required")
	ErrInvalidSource     = errors.New("unknown document source")
	ErrSameDocument      = errors.New("cannot compare a document with itself")
)

type DetectionConfig struct {
	Analyzer         analyzer.Config
	MaxDocuments     int
	MaxContentLength int
	Exchange         string
}

type DetectionService interface {
	AddDocument(ctx context.Context, name, content, source string) (*models.Document, error)
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	ListDocuments(ctx context.Context, limit, offset int) ([]models.Document, error)
	DeleteDocument(ctx context.Context, id string) error

	CompareDocuments(ctx context.Context, idA, idB string, threshold *float64) (*models.ComparisonResult, error)
	CompareAllDocuments(ctx context.Context, ids []string, threshold *float64) (*models.CompareAllResponse, error)
	RequestAnalysis(ctx context.Context, ids []string, threshold *float64) (*models.AsyncAnalysisResponse, error)
	RunAnalysis(ctx context.Context, event models.AnalysisRequestedEvent) error

	GetServiceStatus(ctx context.Context) (*models.ServiceStatus, error)
}

type detectionService struct {
	documentRepo  repository.DocumentRepository
	fingerprinter *analyzer.Fingerprinter
	comparator    *analyzer.Comparator
	publisher     queue.RabbitMQPublisher
	logger        zerolog.Logger
	config        DetectionConfig
}

func NewDetectionService(
	documentRepo repository.DocumentRepository,
	fingerprinter *analyzer.Fingerprinter,
	comparator *analyzer.Comparator,
	publisher queue.RabbitMQPublisher,
	logger zerolog.Logger,
	config DetectionConfig,
) DetectionService {
	return &detectionService{
		documentRepo:  documentRepo,
		fingerprinter: fingerprinter,
		comparator:    comparator,
		publisher:     publisher,
		logger:        logger,
		config:        config,
	}
}

func (s *detectionService) AddDocument(ctx context.Context, name, content, source string) (*models.Document, error) {
	if name == "" {
		return nil, ErrEmptyDocumentName
	}
	if s.config.MaxContentLength > 0 && len(content) > s.config.MaxContentLength {
		return nil, ErrContentTooLarge
	}

	if source == "" {
		source = string(models.SourceUpload)
	}
	docSource := models.DocumentSource(source)
	if !docSource.Valid() {
		return nil, ErrInvalidSource
	}

	doc := &models.Document{
		ID:        utils.GenerateUUID(),
		Name:      name,
		Content:   content,
		Source:    docSource,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	s.publishEvent(ctx, RoutingKeyDocumentAdded, models.DocumentAddedEvent{
		DocumentID: doc.ID,
		Name:       doc.Name,
		Source:     string(doc.Source),
		Timestamp:  doc.CreatedAt.Unix(),
	})

	s.logger.Info().
		Str("document_id", doc.ID).
		Str("name", doc.Name).
		Int("content_length", len(doc.Content)).
		Msg("Document added")

	return doc, nil
}

func (s *detectionService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.documentRepo.GetByID(ctx, id)
}

func (s *detectionService) ListDocuments(ctx context.Context, limit, offset int) ([]models.Document, error) {
	return s.documentRepo.List(ctx, limit, offset)
}

func (s *detectionService) DeleteDocument(ctx context.Context, id string) error {
	return s.documentRepo.Delete(ctx, id)
}

func (s *detectionService) CompareDocuments(ctx context.Context, idA, idB string, threshold *float64) (*models.ComparisonResult, error) {
	if idA == idB {
		return nil, ErrSameDocument
	}

	docA, err := s.documentRepo.GetByID(ctx, idA)
	if err != nil {
		return nil, err
	}
	docB, err := s.documentRepo.GetByID(ctx, idB)
	if err != nil {
		return nil, err
	}

	fpA := s.fingerprinter.Fingerprint(docA.ID, docA.Name, docA.Content)
	fpB := s.fingerprinter.Fingerprint(docB.ID, docB.Name, docB.Content)

	result := s.comparator.CompareFingerprints(fpA, fpB, s.resolveThreshold(threshold))
	return &result, nil
}

func (s *detectionService) CompareAllDocuments(ctx context.Context, ids []string, threshold *float64) (*models.CompareAllResponse, error) {
	docs, err := s.resolveDocuments(ctx, ids)
	if err != nil {
		return nil, err
	}

	fingerprints := s.fingerprintAll(docs)
	results := s.comparator.CompareAll(fingerprints, s.resolveThreshold(threshold))

	flagged := 0
	for _, r := range results {
		if r.IsPlagiarized {
			flagged++
		}
	}

	return &models.CompareAllResponse{
		DocumentCount: len(docs),
		PairCount:     len(results),
		FlaggedCount:  flagged,
		Results:       results,
		CompletedAt:   time.Now().UTC(),
	}, nil
}

func (s *detectionService) RequestAnalysis(ctx context.Context, ids []string, threshold *float64) (*models.AsyncAnalysisResponse, error) {
	// Validate the document set up front so obviously bad requests fail at
	// the API boundary instead of inside the worker.
	if _, err := s.resolveDocuments(ctx, ids); err != nil {
		return nil, err
	}

	event := models.AnalysisRequestedEvent{
		RunID:       utils.GenerateUUID(),
		DocumentIDs: ids,
		Threshold:   s.resolveThreshold(threshold),
		RequestedAt: time.Now().Unix(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis request: %w", err)
	}

	if err := s.publisher.Publish(ctx, s.config.Exchange, RoutingKeyAnalysisRequested, body); err != nil {
		return nil, fmt.Errorf("failed to publish analysis request: %w", err)
	}

	s.logger.Info().
		Str("run_id", event.RunID).
		Int("document_ids", len(ids)).
		Msg("Analysis run requested")

	return &models.AsyncAnalysisResponse{
		RunID:       event.RunID,
		Message:     "Analysis started asynchronously",
		RequestedAt: time.Now().UTC(),
	}, nil
}

// RunAnalysis executes a previously requested all-pairs run and publishes a
// completion (or failure) event. Results are not persisted; the event is the
// only output.
func (s *detectionService) RunAnalysis(ctx context.Context, event models.AnalysisRequestedEvent) error {
	startTime := time.Now()

	docs, err := s.resolveDocuments(ctx, event.DocumentIDs)
	if err != nil {
		s.publishEvent(ctx, RoutingKeyAnalysisFailed, models.AnalysisFailedEvent{
			RunID:    event.RunID,
			Error:    err.Error(),
			FailedAt: time.Now().UTC(),
		})
		return fmt.Errorf("failed to resolve documents: %w", err)
	}

	fingerprints := s.fingerprintAll(docs)
	results := s.comparator.CompareAll(fingerprints, event.Threshold)

	completed := models.AnalysisCompletedEvent{
		RunID:          event.RunID,
		DocumentCount:  len(docs),
		PairCount:      len(results),
		ProcessingTime: int(time.Since(startTime).Milliseconds()),
		CompletedAt:    time.Now().UTC(),
	}
	if len(results) > 0 {
		completed.TopPercentage = results[0].Percentage
	}
	for _, r := range results {
		if r.IsPlagiarized {
			completed.FlaggedCount++
			completed.FlaggedPairs = append(completed.FlaggedPairs, models.FlaggedPair{
				DocumentAID: r.DocumentAID,
				DocumentBID: r.DocumentBID,
				Percentage:  r.Percentage,
				Label:       r.Label,
			})
		}
	}

	s.publishEvent(ctx, RoutingKeyAnalysisCompleted, completed)

	s.logger.Info().
		Str("run_id", event.RunID).
		Int("documents", completed.DocumentCount).
		Int("pairs", completed.PairCount).
		Int("flagged", completed.FlaggedCount).
		Int("processing_time_ms", completed.ProcessingTime).
		Msg("Analysis run completed")

	return nil
}

func (s *detectionService) GetServiceStatus(ctx context.Context) (*models.ServiceStatus, error) {
	count, err := s.documentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	cfg := s.fingerprinter.Config()
	return &models.ServiceStatus{
		DocumentCount: count,
		ShingleMode:   cfg.ShingleMode,
		ShingleSize:   cfg.ShingleSize,
		Winnowing:     cfg.Winnowing,
		Threshold:     cfg.Threshold,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// resolveDocuments loads the requested documents, or the whole stored corpus
// when no IDs are given, enforcing the configured collection cap. The cap is
// the caller-side bound on the O(n²) comparison count.
func (s *detectionService) resolveDocuments(ctx context.Context, ids []string) ([]models.Document, error) {
	if len(ids) > 0 {
		if s.config.MaxDocuments > 0 && len(ids) > s.config.MaxDocuments {
			return nil, ErrTooManyDocuments
		}
		return s.documentRepo.GetByIDs(ctx, ids)
	}

	count, err := s.documentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if s.config.MaxDocuments > 0 && count > s.config.MaxDocuments {
		return nil, ErrTooManyDocuments
	}

	return s.documentRepo.List(ctx, count, 0)
}

// fingerprintAll computes one fingerprint per document. Fingerprinting is
// pure, so documents are processed concurrently; each slot is written by
// exactly one goroutine.
func (s *detectionService) fingerprintAll(docs []models.Document) []*models.DocumentFingerprint {
	fingerprints := make([]*models.DocumentFingerprint, len(docs))

	var wg sync.WaitGroup
	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc := docs[i]
			fingerprints[i] = s.fingerprinter.Fingerprint(doc.ID, doc.Name, doc.Content)
		}(i)
	}
	wg.Wait()

	return fingerprints
}

func (s *detectionService) resolveThreshold(threshold *float64) float64 {
	if threshold != nil && *threshold >= 0 && *threshold <= 1 {
		return *threshold
	}
	return s.fingerprinter.Config().Threshold
}

func (s *detectionService) publishEvent(ctx context.Context, routingKey string, event interface{}) {
	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Str("routing_key", routingKey).Msg("Failed to marshal event")
		return
	}

	if err := s.publisher.Publish(ctx, s.config.Exchange, routingKey, body); err != nil {
		s.logger.Error().Err(err).Str("routing_key", routingKey).Msg("Failed to publish event")
	}
}
