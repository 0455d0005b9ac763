package service

import (
	"github.com/freshsense/spoilage-web/internal/domain"
)

// SubmissionRepository is re-exported from domain for convenience
type SubmissionRepository = domain.SubmissionRepository

// EventPublisher is re-exported from domain for convenience
type EventPublisher = domain.EventPublisher
