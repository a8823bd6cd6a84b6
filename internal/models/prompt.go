package models

import "time"

const (
	PromptStatusActive  = "active"
	PromptStatusPending = "pending"

	// DefaultPromptLevel is the CEFR level assigned when none is given.
	DefaultPromptLevel = "A1"
)

// Prompt is a global catalog entry: a speaking or writing task.
type Prompt struct {
	ID          ID        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string    `json:"title" gorm:"type:varchar(255)"`
	Description string    `json:"description" gorm:"type:text"`
	Type        string    `json:"type" gorm:"type:varchar(50)"`
	Difficulty  string    `json:"difficulty" gorm:"type:varchar(50)"`
	Level       string    `json:"level" gorm:"type:varchar(10)"`
	DueDate     *string   `json:"due_date" gorm:"type:varchar(40)"`
	Status      string    `json:"status" gorm:"type:varchar(20);index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Prompt) TableName() string { return "prompts" }

// UserPrompt is a prompt shaped for a learner's task list.
type UserPrompt struct {
	Prompt
	DueDateAlias *string `json:"dueDate"`
}
