package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/interfaces/http/response"
	"menvo.backend/internal/usecases"
	"menvo.backend/pkg/jwt"
	"menvo.backend/pkg/logger"
	"menvo.backend/pkg/redis"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionIDHeader carries the opaque id of a server-side session
	SessionIDHeader = "X-Session-Id"
	// IdentityKey is the context key for the request's identity snapshot
	IdentityKey = "identity"
	// SessionIDKey is the context key for the resolved session id
	SessionIDKey = "sessionId"
)

var errNoCredentials = errors.New("no credentials")

// AuthMiddleware requires a valid bearer token or session id and stores one IdentitySnapshot per request.
// sessionStore may be nil when sessions are disabled.
func AuthMiddleware(jwtService *jwt.JWTService, sessionStore usecases.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := authenticate(c, jwtService, sessionStore)
		if err != nil {
			if errors.Is(err, errNoCredentials) {
				err = domainerrors.Unauthorized("authorization header or session id is required")
			}
			logger.Debug(c.Request.Context(), "authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			response.Abort(c, err)
			return
		}
		setIdentity(c, snap)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches an identity when credentials are present and valid.
// Anonymous requests pass through; bad credentials are still rejected.
func OptionalAuthMiddleware(jwtService *jwt.JWTService, sessionStore usecases.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := authenticate(c, jwtService, sessionStore)
		switch {
		case errors.Is(err, errNoCredentials):
			c.Next()
			return
		case err != nil:
			response.Abort(c, err)
			return
		}
		setIdentity(c, snap)
		c.Next()
	}
}

func authenticate(c *gin.Context, jwtService *jwt.JWTService, sessionStore usecases.SessionStore) (*entities.IdentitySnapshot, error) {
	tokenString := ""

	if sessionID := c.GetHeader(SessionIDHeader); sessionID != "" && sessionStore != nil {
		session, err := sessionStore.GetSession(c.Request.Context(), sessionID)
		switch {
		case errors.Is(err, redis.ErrSessionNotFound):
			return nil, domainerrors.Unauthorized("session expired or unknown")
		case err != nil:
			return nil, domainerrors.Upstream(err)
		}
		tokenString = session.AccessToken
		c.Set(SessionIDKey, sessionID)
	}

	if tokenString == "" {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			return nil, errNoCredentials
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			return nil, domainerrors.Unauthorized("invalid authorization format, use: Bearer <token>")
		}
		tokenString = strings.TrimPrefix(authHeader, BearerPrefix)
	}

	claims, err := jwtService.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.ErrTokenExpired
		}
		return nil, domainerrors.Unauthorized("invalid token")
	}

	snap, err := usecases.SnapshotFromClaims(claims)
	if err != nil {
		return nil, domainerrors.Unauthorized("token carries an unknown role")
	}
	return snap, nil
}

func setIdentity(c *gin.Context, snap *entities.IdentitySnapshot) {
	c.Set(IdentityKey, snap)
	ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, snap.UserID.String())
	c.Request = c.Request.WithContext(ctx)
}

// GetIdentity returns the snapshot stored by the auth middleware
func GetIdentity(c *gin.Context) (*entities.IdentitySnapshot, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	snap, ok := v.(*entities.IdentitySnapshot)
	return snap, ok && snap != nil
}

// GetSessionID returns the session id the request authenticated with, if any
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// RequirePermission lets the request through only when the caller's role grants perm.
// A caller without a role has no permissions at all.
func RequirePermission(perm entities.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, ok := GetIdentity(c)
		if !ok {
			response.Abort(c, domainerrors.Unauthorized("authentication required"))
			return
		}

		allowed, err := entities.HasPermission(snap.Role, perm)
		if err != nil || !allowed {
			response.Abort(c, domainerrors.Forbidden("insufficient permissions"))
			return
		}
		c.Next()
	}
}

// RequireAdmin creates a middleware that requires the admin permission
func RequireAdmin() gin.HandlerFunc {
	return RequirePermission(entities.PermAdminAccess)
}
