package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/domain/repositories"
	"menvo.backend/pkg/logger"
	"menvo.backend/pkg/utils"
)

// QuizUsecase stores career quiz answers and asks the analyzer for a write-up
type QuizUsecase struct {
	quizRepo repositories.QuizRepository
	analyzer QuizAnalyzer
}

// NewQuizUsecase creates the quiz usecase. A nil analyzer leaves submissions pending.
func NewQuizUsecase(quizRepo repositories.QuizRepository, analyzer QuizAnalyzer) *QuizUsecase {
	return &QuizUsecase{quizRepo: quizRepo, analyzer: analyzer}
}

// Submit stores the answers and analyzes them synchronously. An analyzer failure marks the submission failed
// but the submission itself is kept.
func (u *QuizUsecase) Submit(ctx context.Context, submitter *entities.IdentitySnapshot, input *entities.QuizSubmissionInput) (*entities.QuizSubmission, error) {
	answers := make(map[string]string, len(input.Answers))
	for q, a := range input.Answers {
		q, a = strings.TrimSpace(q), strings.TrimSpace(a)
		if q == "" || a == "" {
			continue
		}
		answers[q] = a
	}
	if len(answers) == 0 {
		return nil, domainerrors.FieldError("answers", "at least one answer is required")
	}

	now := time.Now().UTC()
	submission := &entities.QuizSubmission{
		ID:        utils.GenerateUUIDv7(),
		Answers:   answers,
		Status:    entities.QuizStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if submitter != nil {
		submission.UserID = uuid.NullUUID{UUID: submitter.UserID, Valid: true}
		submission.Email = null.StringFrom(submitter.Email)
	} else if email := normalizeEmail(input.Email); email != "" {
		submission.Email = null.StringFrom(email)
	}

	if err := u.quizRepo.Create(ctx, submission); err != nil {
		return nil, err
	}
	if u.analyzer == nil {
		return submission, nil
	}

	analysis, err := u.analyzer.Analyze(ctx, answers)
	status := entities.QuizStatusAnalyzed
	if err != nil {
		logger.Warn(ctx, "quiz analysis failed", zap.String("submission_id", submission.ID.String()), zap.Error(err))
		status, analysis = entities.QuizStatusFailed, ""
	}
	if err := u.quizRepo.UpdateAnalysis(ctx, submission.ID, status, analysis); err != nil {
		return nil, err
	}
	submission.Status = status
	if analysis != "" {
		submission.Analysis = null.StringFrom(analysis)
	}
	return submission, nil
}

// Get returns a submission. Submissions tied to a user are visible only to that user and admins.
func (u *QuizUsecase) Get(ctx context.Context, viewer *entities.IdentitySnapshot, id uuid.UUID) (*entities.QuizSubmission, error) {
	submission, err := u.quizRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("quiz submission not found")
		}
		return nil, err
	}
	if submission.UserID.Valid {
		if viewer == nil || (viewer.UserID != submission.UserID.UUID && viewer.Role != entities.UserRoleAdmin) {
			return nil, domainerrors.NotFound("quiz submission not found")
		}
	}
	return submission, nil
}
