package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
)

func gatedRouter(resolver LifecycleResolver, allowed ...entities.LifecycleStage) *gin.Engine {
	r := gin.New()
	r.POST("/book",
		func(c *gin.Context) {
			setIdentity(c, &entities.IdentitySnapshot{UserID: uuid.New(), Role: entities.UserRoleMentee})
			c.Next()
		},
		RequireLifecycle(resolver, allowed...),
		func(c *gin.Context) { c.Status(http.StatusCreated) },
	)
	return r
}

func TestRequireLifecycle_Allows(t *testing.T) {
	r := gatedRouter(&fakeResolver{view: &entities.LifecycleView{Stage: entities.StageReady}},
		entities.StageReady, entities.StageNeedsVerification)

	w := perform(r, http.MethodPost, "/book", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRequireLifecycle_RejectsWithStage(t *testing.T) {
	r := gatedRouter(&fakeResolver{view: &entities.LifecycleView{
		Stage:         entities.StageNeedsProfileCompletion,
		MissingFields: []string{entities.FieldBio},
	}}, entities.StageReady)

	w := perform(r, http.MethodPost, "/book", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeLifecycleGated)
	assert.Contains(t, w.Body.String(), string(entities.StageNeedsProfileCompletion))
	assert.Contains(t, w.Body.String(), entities.FieldBio)
}

func TestRequireLifecycle_ProfileFailure(t *testing.T) {
	r := gatedRouter(&fakeResolver{
		view: &entities.LifecycleView{Stage: entities.StageLoading},
		err:  domainerrors.Upstream(errors.New("db timeout")),
	}, entities.StageReady)

	w := perform(r, http.MethodPost, "/book", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequireLifecycle_NeedsIdentity(t *testing.T) {
	r := gin.New()
	r.POST("/book", RequireLifecycle(&fakeResolver{}, entities.StageReady), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodPost, "/book", nil).Code)
}
