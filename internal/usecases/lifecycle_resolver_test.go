package usecases_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"menvo.backend/internal/domain/entities"
	"menvo.backend/internal/usecases"
)

func identity(role entities.UserRole) *entities.IdentitySnapshot {
	return &entities.IdentitySnapshot{UserID: uuid.New(), Email: "u@menvo.app", Role: role, IssuedAt: time.Now()}
}

// expectedStage restates the priority order independently of the resolver
func expectedStage(id *entities.IdentitySnapshot, p *entities.Profile, loaded bool) entities.LifecycleStage {
	switch {
	case id == nil, !loaded:
		return entities.StageLoading
	case id.Role == "":
		return entities.StageNeedsRoleSelection
	case p == nil, !p.IsProfileComplete:
		return entities.StageNeedsProfileCompletion
	case id.Role == entities.UserRoleMentor && !p.VerifiedAt.Valid:
		return entities.StageNeedsVerification
	}
	return entities.StageReady
}

func TestResolveLifecycle_ExhaustiveGrid(t *testing.T) {
	identities := []*entities.IdentitySnapshot{nil, identity(""), identity(entities.UserRoleMentee), identity(entities.UserRoleMentor), identity(entities.UserRoleAdmin), identity(entities.UserRoleCompany), identity(entities.UserRoleRecruiter)}
	profiles := []*entities.Profile{
		nil,
		{IsProfileComplete: false},
		{IsProfileComplete: false, VerifiedAt: null.TimeFrom(time.Now())},
		{IsProfileComplete: true},
		{IsProfileComplete: true, VerifiedAt: null.TimeFrom(time.Now())},
	}

	for i, id := range identities {
		for j, p := range profiles {
			for _, loaded := range []bool{true, false} {
				name := fmt.Sprintf("identity=%d/profile=%d/loaded=%v", i, j, loaded)
				got := usecases.ResolveLifecycle(entities.LifecycleInput{Identity: id, Profile: p, ProfileLoaded: loaded})
				assert.Equal(t, expectedStage(id, p, loaded), got, name)
			}
		}
	}
}

func TestResolveLifecycle_FailsClosedOnProfileError(t *testing.T) {
	complete := &entities.Profile{IsProfileComplete: true, VerifiedAt: null.TimeFrom(time.Now())}
	got := usecases.ResolveLifecycle(entities.LifecycleInput{Identity: identity(entities.UserRoleMentee), Profile: complete, ProfileLoaded: false})
	assert.Equal(t, entities.StageLoading, got)
}

func TestResolveLifecycle_RoleSelectionOutranksProfile(t *testing.T) {
	got := usecases.ResolveLifecycle(entities.LifecycleInput{Identity: identity(""), Profile: nil, ProfileLoaded: true})
	assert.Equal(t, entities.StageNeedsRoleSelection, got)
}

func TestResolveLifecycle_VerificationOnlyForMentors(t *testing.T) {
	complete := &entities.Profile{IsProfileComplete: true}
	assert.Equal(t, entities.StageNeedsVerification, usecases.ResolveLifecycle(entities.LifecycleInput{Identity: identity(entities.UserRoleMentor), Profile: complete, ProfileLoaded: true}))
	assert.Equal(t, entities.StageReady, usecases.ResolveLifecycle(entities.LifecycleInput{Identity: identity(entities.UserRoleMentee), Profile: complete, ProfileLoaded: true}))
}

func TestOverlayFor(t *testing.T) {
	cases := map[entities.LifecycleStage]entities.Overlay{
		entities.StageLoading:                {Kind: entities.OverlaySpinner, Blocking: true},
		entities.StageNeedsRoleSelection:     {Kind: entities.OverlayRoleSelection, Blocking: true, ContentMounted: true},
		entities.StageNeedsProfileCompletion: {Kind: entities.OverlayProfileCompletion, Blocking: true, ContentMounted: true},
		entities.StageNeedsVerification:      {Kind: entities.OverlayVerificationBanner, Dismissible: true, ContentMounted: true},
		entities.StageReady:                  {Kind: entities.OverlayNone, ContentMounted: true},
	}
	for stage, want := range cases {
		assert.Equal(t, want, usecases.OverlayFor(stage), string(stage))
	}
	assert.Equal(t, entities.OverlaySpinner, usecases.OverlayFor("UNKNOWN").Kind)
}

func TestBuildLifecycleView_MissingFields(t *testing.T) {
	id := identity(entities.UserRoleMentor)

	view := usecases.BuildLifecycleView(entities.LifecycleInput{Identity: id, ProfileLoaded: true})
	assert.Equal(t, entities.StageNeedsProfileCompletion, view.Stage)
	assert.Equal(t, entities.RequiredProfileFields(entities.UserRoleMentor), view.MissingFields)

	partial := &entities.Profile{FirstName: "A", LastName: "B", Bio: "bio", City: "c", Country: "BR"}
	view = usecases.BuildLifecycleView(entities.LifecycleInput{Identity: id, Profile: partial, ProfileLoaded: true})
	assert.Equal(t, []string{entities.FieldExpertiseAreas, entities.FieldPresentationVideoURL}, view.MissingFields)

	ready := usecases.BuildLifecycleView(entities.LifecycleInput{Identity: identity(entities.UserRoleMentee), Profile: &entities.Profile{IsProfileComplete: true}, ProfileLoaded: true})
	assert.Empty(t, ready.MissingFields)
	assert.Equal(t, entities.OverlayNone, ready.Overlay.Kind)
}
