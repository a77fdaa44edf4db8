package usecases

import (
	"context"
	"io"
	"time"

	"menvo.backend/internal/domain/entities"
	"menvo.backend/pkg/redis"
)

// AppointmentNotifier delivers appointment events to the messaging backbone
type AppointmentNotifier interface {
	Publish(ctx context.Context, event *entities.AppointmentEvent) error
}

// FileUploader stores file bytes with the storage provider
type FileUploader interface {
	Upload(ctx context.Context, folder, fileName, resourceType string, r io.Reader) (*entities.UploadedFile, error)
}

// QuizAnalyzer turns quiz answers into a written career analysis
type QuizAnalyzer interface {
	Analyze(ctx context.Context, answers map[string]string) (string, error)
}

// SessionStore keeps server-side browser sessions
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
