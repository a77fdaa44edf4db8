package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/infrastructure/models"
)

// QuizRepository implements quiz submission storage
type QuizRepository struct {
	db *gorm.DB
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(ctx context.Context, submission *entities.QuizSubmission) error {
	m := &models.QuizSubmission{
		ID:        submission.ID,
		Email:     submission.Email.Ptr(),
		Answers:   submission.Answers,
		Analysis:  submission.Analysis.Ptr(),
		Status:    string(submission.Status),
		CreatedAt: submission.CreatedAt,
		UpdatedAt: submission.UpdatedAt,
	}
	if submission.UserID.Valid {
		userID := submission.UserID.UUID
		m.UserID = &userID
	}
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *QuizRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.QuizSubmission, error) {
	var m models.QuizSubmission
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	s := &entities.QuizSubmission{
		ID:        m.ID,
		Email:     null.StringFromPtr(m.Email),
		Answers:   m.Answers,
		Analysis:  null.StringFromPtr(m.Analysis),
		Status:    entities.QuizStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.UserID != nil {
		s.UserID = uuid.NullUUID{UUID: *m.UserID, Valid: true}
	}
	return s, nil
}

// UpdateAnalysis records the analyzer outcome. An empty analysis is stored as NULL.
func (r *QuizRepository) UpdateAnalysis(ctx context.Context, id uuid.UUID, status entities.QuizStatus, analysis string) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"analysis":   nil,
		"updated_at": time.Now().UTC(),
	}
	if analysis != "" {
		updates["analysis"] = analysis
	}
	result := GetDB(ctx, r.db).Model(&models.QuizSubmission{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DocumentRepository implements upload metadata storage
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	return GetDB(ctx, r.db).Create(&models.Document{
		ID:          doc.ID,
		UserID:      doc.UserID,
		Kind:        string(doc.Kind),
		URL:         doc.URL,
		PublicID:    doc.PublicID,
		FileName:    doc.FileName,
		SizeBytes:   doc.SizeBytes,
		ContentType: doc.ContentType,
		CreatedAt:   doc.CreatedAt,
	}).Error
}

// ListByUser returns the user's uploads, newest first
func (r *DocumentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Document, error) {
	var docModels []models.Document
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("created_at DESC").Find(&docModels).Error; err != nil {
		return nil, err
	}

	docs := make([]*entities.Document, 0, len(docModels))
	for _, m := range docModels {
		docs = append(docs, &entities.Document{
			ID:          m.ID,
			UserID:      m.UserID,
			Kind:        entities.DocumentKind(m.Kind),
			URL:         m.URL,
			PublicID:    m.PublicID,
			FileName:    m.FileName,
			SizeBytes:   m.SizeBytes,
			ContentType: m.ContentType,
			CreatedAt:   m.CreatedAt,
		})
	}
	return docs, nil
}
