package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freshsense/spoilage-web/internal/domain"
)

// SubmissionService records completed submit cycles in the log and on the event bus
type SubmissionService struct {
	repo      SubmissionRepository
	publisher EventPublisher
	log       *zap.Logger
	now       func() time.Time

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// NewSubmissionService creates a new submission service.
// publisher may be nil when no event bus is configured.
func NewSubmissionService(repo SubmissionRepository, publisher EventPublisher, log *zap.Logger) *SubmissionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionService{
		repo:      repo,
		publisher: publisher,
		log:       log.Named("submissions"),
		now:       time.Now,
	}
}

// Record builds a submission from one cycle's outcome and persists it asynchronously.
// The returned submission is what will be stored.
func (s *SubmissionService) Record(source string, readings domain.Readings, result domain.PredictionResult, reqErr error) domain.Submission {
	sub := domain.Submission{
		ID:        uuid.NewString(),
		Readings:  readings,
		Result:    result,
		Outcome:   domain.OutcomeSuccess,
		Source:    source,
		CreatedAt: s.now().UTC(),
	}
	if reqErr != nil || result.Failed() {
		sub.Outcome = domain.OutcomeFailed
		if reqErr != nil && sub.Result.Error == "" {
			sub.Result.Error = reqErr.Error()
		}
	}

	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SaveSubmission(bgCtx, sub); err != nil {
			s.log.Warn("failed to save submission", zap.String("id", sub.ID), zap.Error(err))
		}
		if s.publisher != nil {
			if err := s.publisher.Publish(bgCtx, sub); err != nil {
				s.log.Warn("failed to publish submission", zap.String("id", sub.ID), zap.Error(err))
			}
		}
	}()

	return sub
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *SubmissionService) WaitBackground() {
	s.wgBg.Wait()
}

// Recent returns the newest submissions; limits outside 1..100 fall back to 20
func (s *SubmissionService) Recent(ctx context.Context, limit int) ([]domain.Submission, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.RecentSubmissions(ctx, limit)
}

// Health checks the submission store
func (s *SubmissionService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

// Close releases the event publisher
func (s *SubmissionService) Close() error {
	if s.publisher == nil {
		return nil
	}
	return s.publisher.Close()
}
