package repositories

import (
	"context"

	"github.com/sanjay2518/FR/internal/models"
)

// SubmissionRepository defines the interface for submission access.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	// GetAllWithDetails returns submissions joined with their user and prompt, newest
	// first. An empty status returns every submission.
	GetAllWithDetails(ctx context.Context, status string) ([]models.SubmissionDetail, error)
	// ApplyFeedback marks a submission reviewed. It reports false when no
	// submission has the id.
	ApplyFeedback(ctx context.Context, id string, feedback models.Feedback) (bool, error)
}
