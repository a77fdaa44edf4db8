package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/interfaces/http/response"
)

// LifecycleKey is the context key for the lifecycle view resolved by RequireLifecycle
const LifecycleKey = "lifecycle"

// LifecycleResolver resolves the onboarding stage of a caller
type LifecycleResolver interface {
	Resolve(ctx context.Context, snap *entities.IdentitySnapshot) (*entities.LifecycleView, error)
}

// RequireLifecycle rejects callers whose onboarding stage is not one of allowed.
// It must run after AuthMiddleware.
func RequireLifecycle(resolver LifecycleResolver, allowed ...entities.LifecycleStage) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, ok := GetIdentity(c)
		if !ok {
			response.Abort(c, domainerrors.Unauthorized("authentication required"))
			return
		}

		view, err := resolver.Resolve(c.Request.Context(), snap)
		if err != nil {
			response.Abort(c, err)
			return
		}

		for _, stage := range allowed {
			if view.Stage == stage {
				c.Set(LifecycleKey, view)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"code":          domainerrors.CodeLifecycleGated,
			"message":       "finish onboarding before using this feature",
			"stage":         view.Stage,
			"missingFields": view.MissingFields,
		})
	}
}
