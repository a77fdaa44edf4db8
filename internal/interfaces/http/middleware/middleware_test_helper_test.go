package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"menvo.backend/internal/domain/entities"
	"menvo.backend/pkg/jwt"
	"menvo.backend/pkg/redis"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSessionStore struct {
	sessions map[string]*redis.SessionData
	err      error
}

func (f *fakeSessionStore) CreateSession(_ context.Context, id string, data *redis.SessionData, _ time.Duration) error {
	f.sessions[id] = data
	return nil
}

func (f *fakeSessionStore) GetSession(_ context.Context, id string) (*redis.SessionData, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, redis.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

type fakeResolver struct {
	view *entities.LifecycleView
	err  error
}

func (f *fakeResolver) Resolve(context.Context, *entities.IdentitySnapshot) (*entities.LifecycleView, error) {
	return f.view, f.err
}

func newJWT() *jwt.JWTService {
	return jwt.NewJWTService("test-secret", time.Minute, time.Hour)
}

func tokenFor(t *testing.T, svc *jwt.JWTService, role string) (string, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	pair, err := svc.GenerateTokenPair(id, "user@menvo.test", role)
	require.NoError(t, err)
	return pair.AccessToken, id
}

func perform(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func identityEcho(c *gin.Context) {
	snap, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": snap.UserID, "role": snap.Role, "session": GetSessionID(c)})
}
