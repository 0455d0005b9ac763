package domain

import "context"

// SubmissionRepository defines the interface for the submission log
// This follows the Dependency Inversion Principle - domain defines the interface
type SubmissionRepository interface {
	// SaveSubmission persists one completed submit cycle
	SaveSubmission(ctx context.Context, s Submission) error

	// RecentSubmissions returns up to limit submissions, newest first
	RecentSubmissions(ctx context.Context, limit int) ([]Submission, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error
}

// EventPublisher announces completed submissions to downstream consumers
type EventPublisher interface {
	Publish(ctx context.Context, s Submission) error
	Close() error
}
