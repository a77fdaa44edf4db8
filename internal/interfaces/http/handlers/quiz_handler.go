package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menvo.backend/internal/domain/entities"
	"menvo.backend/internal/interfaces/http/middleware"
	"menvo.backend/internal/interfaces/http/response"
)

type quizService interface {
	Submit(ctx context.Context, submitter *entities.IdentitySnapshot, input *entities.QuizSubmissionInput) (*entities.QuizSubmission, error)
	Get(ctx context.Context, viewer *entities.IdentitySnapshot, id uuid.UUID) (*entities.QuizSubmission, error)
}

// QuizHandler handles the onboarding career quiz
type QuizHandler struct {
	quizUsecase quizService
}

func NewQuizHandler(quizUsecase quizService) *QuizHandler {
	return &QuizHandler{quizUsecase: quizUsecase}
}

// Submit stores quiz answers and returns the submission with its analysis, if any
// POST /api/v1/quiz/submissions
func (h *QuizHandler) Submit(c *gin.Context) {
	var input entities.QuizSubmissionInput
	if !bindJSON(c, &input) {
		return
	}
	submitter, _ := middleware.GetIdentity(c)

	submission, err := h.quizUsecase.Submit(c.Request.Context(), submitter, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"submission": submission})
}

// Get returns a submission
// GET /api/v1/quiz/submissions/:id
func (h *QuizHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	viewer, _ := middleware.GetIdentity(c)

	submission, err := h.quizUsecase.Get(c.Request.Context(), viewer, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"submission": submission})
}
