package usecases

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/domain/repositories"
	"menvo.backend/pkg/logger"
	"menvo.backend/pkg/utils"
)

// UploadUsecase validates files, hands them to storage and records the result
type UploadUsecase struct {
	uploader    FileUploader
	docRepo     repositories.DocumentRepository
	profileRepo repositories.ProfileRepository
	folder      string
}

// NewUploadUsecase creates the upload usecase. A nil uploader makes uploads fail as unavailable.
func NewUploadUsecase(uploader FileUploader, docRepo repositories.DocumentRepository, profileRepo repositories.ProfileRepository, folder string) *UploadUsecase {
	return &UploadUsecase{uploader: uploader, docRepo: docRepo, profileRepo: profileRepo, folder: folder}
}

// Upload stores one file for userID. CV and avatar uploads also update the profile URL.
func (u *UploadUsecase) Upload(ctx context.Context, userID uuid.UUID, input *entities.UploadInput) (*entities.Document, error) {
	rule, ok := entities.UploadRules[input.Kind]
	if !ok {
		return nil, domainerrors.FieldError("kind", "kind must be cv, avatar or document")
	}
	ext := strings.ToLower(filepath.Ext(input.FileName))
	if !rule.Allows(ext) {
		return nil, domainerrors.FieldError("file", fmt.Sprintf("file type not allowed, expected one of %s", strings.Join(rule.Extensions, ", ")))
	}
	if input.Size <= 0 {
		return nil, domainerrors.FieldError("file", "file is empty")
	}
	if input.Size > rule.MaxBytes {
		return nil, domainerrors.FieldError("file", fmt.Sprintf("file exceeds %d MB", rule.MaxBytes>>20))
	}
	if u.uploader == nil {
		return nil, domainerrors.Upstream(errors.New("file storage is not configured"))
	}

	folder := fmt.Sprintf("%s/%s/%s", u.folder, input.Kind, userID)
	stored, err := u.uploader.Upload(ctx, folder, input.FileName, rule.ResourceType, input.Body)
	if err != nil {
		logger.Error(ctx, "upload failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, domainerrors.Upstream(err)
	}

	doc := &entities.Document{
		ID:          utils.GenerateUUIDv7(),
		UserID:      userID,
		Kind:        input.Kind,
		URL:         stored.URL,
		PublicID:    stored.PublicID,
		FileName:    filepath.Base(input.FileName),
		SizeBytes:   input.Size,
		ContentType: input.ContentType,
		CreatedAt:   time.Now().UTC(),
	}
	if err := u.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	if input.Kind == entities.DocumentKindCV || input.Kind == entities.DocumentKindAvatar {
		err := u.profileRepo.UpdateMedia(ctx, userID, input.Kind, stored.URL)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}
	return doc, nil
}

func (u *UploadUsecase) List(ctx context.Context, userID uuid.UUID) ([]*entities.Document, error) {
	return u.docRepo.ListByUser(ctx, userID)
}
