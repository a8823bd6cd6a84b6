package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/sanjay2518/FR/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSubmissionRepository is a GORM implementation of SubmissionRepository.
type GORMSubmissionRepository struct {
	db *gorm.DB
}

// NewGORMSubmissionRepository creates a new instance of GORMSubmissionRepository.
func NewGORMSubmissionRepository(db *gorm.DB) *GORMSubmissionRepository {
	return &GORMSubmissionRepository{db: db}
}

func (r *GORMSubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission.ID == "" {
		submission.ID = models.ID(uuid.New().String())
	}
	if submission.Status == "" {
		submission.Status = models.SubmissionStatusPending
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Omit("User", "Prompt").Create(submission).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *GORMSubmissionRepository) GetAllWithDetails(ctx context.Context, status string) ([]models.SubmissionDetail, error) {
	var submissions []models.Submission
	q := r.db.WithContext(ctx).Preload("User").Preload("Prompt").Order("submitted_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}

	details := make([]models.SubmissionDetail, 0, len(submissions))
	for _, s := range submissions {
		details = append(details, models.NewSubmissionDetail(s, s.User, s.Prompt))
	}
	return details, nil
}

func (r *GORMSubmissionRepository) ApplyFeedback(ctx context.Context, id string, feedback models.Feedback) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Submission{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      models.SubmissionStatusReviewed,
		"score":       feedback.Score,
		"feedback":    feedback.Comments,
		"reviewed_at": feedback.ReviewedAt,
	})
	if res.Error != nil {
		return false, fmt.Errorf("failed to apply feedback to submission %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
