package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sanjay2518/FR/internal/models"
	"github.com/sanjay2518/FR/pkg/supabase"
)

// submissionJoinSelect embeds the referenced user and prompt in each row.
const submissionJoinSelect = "*,users(first_name,last_name,email),prompts(title,type)"

// SupabaseSubmissionRepository reads and reviews rows of the hosted "submissions" table.
type SupabaseSubmissionRepository struct {
	client *supabase.Client
}

func NewSupabaseSubmissionRepository(client *supabase.Client) *SupabaseSubmissionRepository {
	return &SupabaseSubmissionRepository{client: client}
}

type submissionRow struct {
	models.Submission
	Users   *models.User   `json:"users"`
	Prompts *models.Prompt `json:"prompts"`
}

func (r *SupabaseSubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if r.client == nil {
		return ErrNotConfigured
	}
	if submission.Status == "" {
		submission.Status = models.SubmissionStatusPending
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now().UTC()
	}
	row := map[string]any{
		"user_id":              submission.UserID,
		"prompt_id":            submission.PromptID,
		"submission_file_path": submission.SubmissionFilePath,
		"status":               submission.Status,
		"submitted_at":         submission.SubmittedAt.Format(time.RFC3339),
	}
	if submission.ID != "" {
		row["id"] = submission.ID
	}
	resp, err := r.client.From("submissions").ExecuteInsert(ctx, row)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	var stored []models.Submission
	if err := resp.JSON(&stored); err != nil {
		return fmt.Errorf("failed to decode created submission: %w", err)
	}
	if len(stored) > 0 {
		*submission = stored[0]
	}
	return nil
}

func (r *SupabaseSubmissionRepository) GetAllWithDetails(ctx context.Context, status string) ([]models.SubmissionDetail, error) {
	if r.client == nil {
		return nil, ErrNotConfigured
	}
	q := r.client.From("submissions").Select(submissionJoinSelect).Order("submitted_at", false)
	if status != "" {
		q = q.Eq("status", status)
	}
	resp, err := q.Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}
	var rows []submissionRow
	if err := resp.JSON(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode submissions: %w", err)
	}

	details := make([]models.SubmissionDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, models.NewSubmissionDetail(row.Submission, row.Users, row.Prompts))
	}
	return details, nil
}

func (r *SupabaseSubmissionRepository) ApplyFeedback(ctx context.Context, id string, feedback models.Feedback) (bool, error) {
	if r.client == nil {
		return false, ErrNotConfigured
	}
	resp, err := r.client.From("submissions").Eq("id", id).ExecuteUpdate(ctx, map[string]interface{}{
		"status":      models.SubmissionStatusReviewed,
		"score":       feedback.Score,
		"feedback":    feedback.Comments,
		"reviewed_at": feedback.ReviewedAt.Format(time.RFC3339),
	})
	if err != nil {
		return false, fmt.Errorf("failed to apply feedback to submission %s: %w", id, err)
	}
	var updated []json.RawMessage
	if err := resp.JSON(&updated); err != nil {
		return false, fmt.Errorf("failed to decode feedback result: %w", err)
	}
	return len(updated) > 0, nil
}
