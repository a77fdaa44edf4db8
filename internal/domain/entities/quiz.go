package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// QuizStatus tracks the AI analysis of a submission
type QuizStatus string

const (
	QuizStatusPending  QuizStatus = "pending"
	QuizStatusAnalyzed QuizStatus = "analyzed"
	QuizStatusFailed   QuizStatus = "failed"
)

// QuizSubmission is one run of the onboarding career quiz
type QuizSubmission struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.NullUUID     `json:"userId,omitempty"`
	Email     null.String       `json:"email,omitempty"`
	Answers   map[string]string `json:"answers"`
	Analysis  null.String       `json:"analysis,omitempty"`
	Status    QuizStatus        `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// QuizSubmissionInput is posted by the quiz page
type QuizSubmissionInput struct {
	Email   string            `json:"email" binding:"omitempty,email"`
	Answers map[string]string `json:"answers" binding:"required,min=1,max=50,dive,keys,max=200,endkeys,max=2000"`
}
