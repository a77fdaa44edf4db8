package repositories

import (
	"context"

	"github.com/google/uuid"
	"menvo.backend/internal/domain/entities"
)

// QuizRepository stores quiz submissions and their analysis
type QuizRepository interface {
	Create(ctx context.Context, submission *entities.QuizSubmission) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.QuizSubmission, error)
	UpdateAnalysis(ctx context.Context, id uuid.UUID, status entities.QuizStatus, analysis string) error
}

// DocumentRepository stores upload metadata
type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Document, error)
}
