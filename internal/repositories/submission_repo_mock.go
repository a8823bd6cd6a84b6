package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sanjay2518/FR/internal/models"

	"github.com/google/uuid"
)

// MockSubmissionRepository is an in-memory implementation of SubmissionRepository.
// Joins read from the sibling mock user and prompt repositories.
type MockSubmissionRepository struct {
	submissions []models.Submission
	mu          sync.RWMutex

	users   *MockUserRepository
	prompts *MockPromptRepository
}

// NewMockSubmissionRepository creates a new instance of MockSubmissionRepository.
// Either sibling may be nil, in which case joins use placeholders.
func NewMockSubmissionRepository(users *MockUserRepository, prompts *MockPromptRepository) *MockSubmissionRepository {
	return &MockSubmissionRepository{users: users, prompts: prompts}
}

func (r *MockSubmissionRepository) Create(_ context.Context, submission *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if submission.ID == "" {
		submission.ID = models.ID(uuid.New().String())
	}
	if submission.Status == "" {
		submission.Status = models.SubmissionStatusPending
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now().UTC()
	}
	r.submissions = append(r.submissions, *submission)
	return nil
}

func (r *MockSubmissionRepository) GetAllWithDetails(_ context.Context, status string) ([]models.SubmissionDetail, error) {
	r.mu.RLock()
	matched := make([]models.Submission, 0, len(r.submissions))
	for i := len(r.submissions) - 1; i >= 0; i-- {
		if status == "" || r.submissions[i].Status == status {
			matched = append(matched, r.submissions[i])
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
	})

	details := make([]models.SubmissionDetail, 0, len(matched))
	for _, s := range matched {
		var user *models.User
		if r.users != nil {
			user, _ = r.users.find(s.UserID)
		}
		var prompt *models.Prompt
		if r.prompts != nil {
			prompt, _ = r.prompts.find(s.PromptID.String())
		}
		details = append(details, models.NewSubmissionDetail(s, user, prompt))
	}
	return details, nil
}

func (r *MockSubmissionRepository) ApplyFeedback(_ context.Context, id string, feedback models.Feedback) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.submissions {
		if r.submissions[i].ID.String() != id {
			continue
		}
		reviewedAt := feedback.ReviewedAt
		r.submissions[i].Status = models.SubmissionStatusReviewed
		r.submissions[i].Score = feedback.Score
		r.submissions[i].Feedback = feedback.Comments
		r.submissions[i].ReviewedAt = &reviewedAt
		return true, nil
	}
	return false, nil
}
