package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/interfaces/http/middleware"
	"menvo.backend/internal/interfaces/http/response"
)

// multipart overhead allowed on top of the largest accepted file
const uploadFormSlack = 1 << 20

type uploadService interface {
	Upload(ctx context.Context, userID uuid.UUID, input *entities.UploadInput) (*entities.Document, error)
	List(ctx context.Context, userID uuid.UUID) ([]*entities.Document, error)
}

// UploadHandler receives CVs, avatars and supporting documents
type UploadHandler struct {
	uploadUsecase uploadService
}

func NewUploadHandler(uploadUsecase uploadService) *UploadHandler {
	return &UploadHandler{uploadUsecase: uploadUsecase}
}

// Upload stores the multipart "file" field for the given kind
// POST /api/v1/uploads/:kind
func (h *UploadHandler) Upload(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	kind := entities.DocumentKind(c.Param("kind"))
	rule, ok := entities.UploadRules[kind]
	if !ok {
		response.Error(c, domainerrors.FieldError("kind", "kind must be one of: cv, avatar, document"))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, rule.MaxBytes+uploadFormSlack)
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, domainerrors.FieldError("file", "file is required and must fit the size limit"))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("could not read uploaded file"))
		return
	}
	defer file.Close()

	doc, err := h.uploadUsecase.Upload(c.Request.Context(), snap.UserID, &entities.UploadInput{
		Kind:        kind,
		FileName:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"document": doc})
}

// List returns the caller's uploads
// GET /api/v1/uploads
func (h *UploadHandler) List(c *gin.Context) {
	snap, ok := middleware.GetIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	docs, err := h.uploadUsecase.List(c.Request.Context(), snap.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if docs == nil {
		docs = []*entities.Document{}
	}
	response.Success(c, http.StatusOK, gin.H{"items": docs})
}
