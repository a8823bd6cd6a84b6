package services

import (
	"context"
	"time"

	"github.com/sanjay2518/FR/internal/metrics"
	"github.com/sanjay2518/FR/internal/models"
	"github.com/sanjay2518/FR/internal/repositories"

	log "github.com/sirupsen/logrus"
)

// SubmissionService lists and reviews learner submissions.
type SubmissionService struct {
	repo   repositories.SubmissionRepository
	events EventPublisher
	now    func() time.Time
}

// NewSubmissionService creates a new SubmissionService. events may be nil.
func NewSubmissionService(repo repositories.SubmissionRepository, events EventPublisher) *SubmissionService {
	return &SubmissionService{repo: repo, events: events, now: time.Now}
}

// List returns the joined submissions, optionally narrowed to one status.
func (s *SubmissionService) List(ctx context.Context, status string) ([]models.SubmissionDetail, error) {
	details, err := s.repo.GetAllWithDetails(ctx, status)
	if err != nil {
		return nil, err
	}
	if details == nil {
		details = []models.SubmissionDetail{}
	}
	return details, nil
}

// AddFeedback marks the submission reviewed with the score and comments. It
// reports whether a submission was updated; an unknown id is not an error.
func (s *SubmissionService) AddFeedback(ctx context.Context, id string, score *float64, comments *string) (bool, error) {
	reviewedAt := s.now().UTC()
	updated, err := s.repo.ApplyFeedback(ctx, id, models.Feedback{
		Score:      score,
		Comments:   comments,
		ReviewedAt: reviewedAt,
	})
	if err != nil {
		metrics.RecordFeedback("failed")
		return false, err
	}
	if !updated {
		metrics.RecordFeedback("not_found")
		log.WithField("submission_id", id).Warn("Feedback for unknown submission ignored")
		return false, nil
	}

	metrics.RecordFeedback("updated")
	data := map[string]interface{}{
		"submission_id": id,
		"reviewed_at":   reviewedAt.Format(time.RFC3339),
	}
	if score != nil {
		data["score"] = *score
	}
	publish(s.events, EventSubmissionReviewed, data)
	return true, nil
}
