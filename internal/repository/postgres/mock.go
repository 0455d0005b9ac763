package postgres

import (
	"context"
	"sync"

	"github.com/freshsense/spoilage-web/internal/domain"
)

// maxMockSubmissions bounds the in-memory log
const maxMockSubmissions = 100

// MockRepository implements domain.SubmissionRepository in memory for testing/demo mode
type MockRepository struct {
	mu          sync.RWMutex
	submissions []domain.Submission
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SaveSubmission keeps the submission in memory, dropping the oldest past the cap
func (r *MockRepository) SaveSubmission(ctx context.Context, s domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append(r.submissions, s)
	if len(r.submissions) > maxMockSubmissions {
		r.submissions = r.submissions[len(r.submissions)-maxMockSubmissions:]
	}
	return nil
}

// RecentSubmissions returns up to limit stored submissions, newest first
func (r *MockRepository) RecentSubmissions(ctx context.Context, limit int) ([]domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Submission, 0, limit)
	for i := len(r.submissions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.submissions[i])
	}
	return out, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
