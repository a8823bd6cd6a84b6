package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sanjay2518/FR/internal/models"

	"github.com/google/uuid"
)

// MockPromptRepository is an in-memory implementation of PromptRepository.
type MockPromptRepository struct {
	prompts []models.Prompt
	mu      sync.RWMutex
}

// NewMockPromptRepository creates a new instance of MockPromptRepository.
func NewMockPromptRepository() *MockPromptRepository {
	return &MockPromptRepository{}
}

func (r *MockPromptRepository) GetAll(_ context.Context) ([]models.Prompt, error) {
	return r.filter(func(models.Prompt) bool { return true }), nil
}

func (r *MockPromptRepository) GetByStatus(_ context.Context, status string) ([]models.Prompt, error) {
	return r.filter(func(p models.Prompt) bool { return p.Status == status }), nil
}

func (r *MockPromptRepository) filter(keep func(models.Prompt) bool) []models.Prompt {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Prompt, 0, len(r.prompts))
	// Newest first; ties keep reverse insertion order.
	for i := len(r.prompts) - 1; i >= 0; i-- {
		if keep(r.prompts[i]) {
			out = append(out, r.prompts[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *MockPromptRepository) Create(_ context.Context, prompt *models.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prompt.ID == "" {
		prompt.ID = models.ID(uuid.New().String())
	}
	if prompt.CreatedAt.IsZero() {
		prompt.CreatedAt = time.Now().UTC()
	}
	r.prompts = append(r.prompts, *prompt)
	return nil
}

func (r *MockPromptRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.prompts[:0]
	for _, p := range r.prompts {
		if p.ID.String() != id {
			kept = append(kept, p)
		}
	}
	r.prompts = kept
	return nil
}

func (r *MockPromptRepository) find(id string) (*models.Prompt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.prompts {
		if p.ID.String() == id {
			return &p, true
		}
	}
	return nil, false
}
