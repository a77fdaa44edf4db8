package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
)

type stubResolver struct {
	view *entities.LifecycleView
	err  error
}

func (s stubResolver) Resolve(context.Context, *entities.IdentitySnapshot) (*entities.LifecycleView, error) {
	return s.view, s.err
}

func lifecycleRouter(resolver stubResolver, snap *entities.IdentitySnapshot) *gin.Engine {
	r := gin.New()
	r.GET("/me/lifecycle", asUser(snap), NewLifecycleHandler(resolver).Get)
	return r
}

func TestLifecycleHandler_Ready(t *testing.T) {
	snap := menteeSnap()
	view := &entities.LifecycleView{
		Stage:          entities.StageNeedsProfileCompletion,
		Overlay:        entities.Overlay{Kind: entities.OverlayProfileCompletion, Blocking: true, ContentMounted: true},
		Identity:       snap,
		RequiredFields: entities.RequiredProfileFields(entities.UserRoleMentee),
		MissingFields:  []string{entities.FieldBio},
	}

	w := doJSON(lifecycleRouter(stubResolver{view: view}, snap), http.MethodGet, "/me/lifecycle", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, string(entities.StageNeedsProfileCompletion), body["stage"])
	assert.Equal(t, []interface{}{entities.FieldBio}, body["missingFields"])
	assert.Len(t, body["requiredFields"], 5)
	assert.Equal(t, true, body["overlay"].(map[string]interface{})["blocking"])
}

func TestLifecycleHandler_ProfileUnavailable(t *testing.T) {
	resolver := stubResolver{
		view: &entities.LifecycleView{Stage: entities.StageLoading, Overlay: entities.Overlay{Kind: entities.OverlaySpinner, Blocking: true}},
		err:  domainerrors.Upstream(errors.New("timeout")),
	}

	w := doJSON(lifecycleRouter(resolver, menteeSnap()), http.MethodGet, "/me/lifecycle", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, string(entities.StageLoading), body["stage"])
	assert.Equal(t, domainerrors.CodeUpstream, body["code"])
}

func TestLifecycleHandler_Anonymous(t *testing.T) {
	w := doJSON(lifecycleRouter(stubResolver{}, nil), http.MethodGet, "/me/lifecycle", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
