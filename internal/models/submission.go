package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusReviewed = "reviewed"

	UnknownUser   = "Unknown User"
	UnknownPrompt = "Unknown Prompt"
)

// Submission is a learner's answer to a prompt. It references, but does not own,
// the user and the prompt.
type Submission struct {
	ID                 ID         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID             string     `json:"user_id" gorm:"type:varchar(36);index"`
	PromptID           ID         `json:"prompt_id" gorm:"type:varchar(36);index"`
	SubmissionFilePath string     `json:"submission_file_path" gorm:"type:text"`
	Status             string     `json:"status" gorm:"type:varchar(20);index"`
	Score              *float64   `json:"score"`
	Feedback           *string    `json:"feedback" gorm:"type:text"`
	SubmittedAt        time.Time  `json:"submitted_at"`
	ReviewedAt         *time.Time `json:"reviewed_at"`

	User   *User   `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Prompt *Prompt `json:"-" gorm:"foreignKey:PromptID;references:ID"`
}

func (Submission) TableName() string { return "submissions" }

// Feedback is a reviewer's verdict on a submission.
type Feedback struct {
	Score      *float64
	Comments   *string
	ReviewedAt time.Time
}

// SubmissionDetail is a submission joined with its user and prompt for the admin views.
type SubmissionDetail struct {
	Submission
	UserName    string `json:"userName"`
	UserEmail   string `json:"userEmail"`
	PromptTitle string `json:"promptTitle"`
	Type        string `json:"type"`
	// Aliases read by the feedback screen.
	Title     string `json:"title"`
	User      string `json:"user"`
	AudioFile string `json:"audioFile,omitempty"`
}

// NewSubmissionDetail joins a submission with its user and prompt. Either may be nil,
// in which case placeholder names are used.
func NewSubmissionDetail(s Submission, user *User, prompt *Prompt) SubmissionDetail {
	d := SubmissionDetail{
		Submission:  s,
		UserName:    UnknownUser,
		PromptTitle: UnknownPrompt,
		AudioFile:   s.SubmissionFilePath,
	}
	if user != nil {
		if name := user.FullName(); name != "" {
			d.UserName = name
		}
		d.UserEmail = user.Email
	}
	if prompt != nil {
		if prompt.Title != "" {
			d.PromptTitle = prompt.Title
		}
		d.Type = prompt.Type
	}
	d.Title = d.PromptTitle
	d.User = d.UserName
	d.Submission.User = nil
	d.Submission.Prompt = nil
	return d
}

// Score is a feedback score. It accepts a JSON number or a numeric string,
// since HTML form inputs post strings. null and "" mean no score.
type Score struct {
	value *float64
}

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		s.value = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			s.value = nil
			return nil
		}
		data = []byte(raw)
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid score %q", string(data))
	}
	s.value = &v
	return nil
}

// Float returns the score as *float64, nil-safe.
func (s *Score) Float() *float64 {
	if s == nil || s.value == nil {
		return nil
	}
	v := *s.value
	return &v
}
