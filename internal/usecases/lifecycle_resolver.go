package usecases

import (
	"menvo.backend/internal/domain/entities"
)

// ResolveLifecycle maps identity and profile state to exactly one onboarding stage.
// Checks run in priority order and the first match wins.
func ResolveLifecycle(in entities.LifecycleInput) entities.LifecycleStage {
	if in.Identity == nil || !in.ProfileLoaded {
		return entities.StageLoading
	}
	if !in.Identity.HasRole() {
		return entities.StageNeedsRoleSelection
	}
	if in.Profile == nil || !in.Profile.IsProfileComplete {
		return entities.StageNeedsProfileCompletion
	}
	if in.Identity.Role == entities.UserRoleMentor && !in.Profile.VerifiedAt.Valid {
		return entities.StageNeedsVerification
	}
	return entities.StageReady
}

var overlays = map[entities.LifecycleStage]entities.Overlay{
	entities.StageLoading: {
		Kind:     entities.OverlaySpinner,
		Blocking: true,
	},
	entities.StageNeedsRoleSelection: {
		Kind:           entities.OverlayRoleSelection,
		Blocking:       true,
		ContentMounted: true,
	},
	entities.StageNeedsProfileCompletion: {
		Kind:           entities.OverlayProfileCompletion,
		Blocking:       true,
		ContentMounted: true,
	},
	entities.StageNeedsVerification: {
		Kind:           entities.OverlayVerificationBanner,
		Dismissible:    true,
		ContentMounted: true,
	},
	entities.StageReady: {
		Kind:           entities.OverlayNone,
		ContentMounted: true,
	},
}

// OverlayFor returns the overlay shown for stage. Unknown stages get the loading spinner.
func OverlayFor(stage entities.LifecycleStage) entities.Overlay {
	if o, ok := overlays[stage]; ok {
		return o
	}
	return overlays[entities.StageLoading]
}

// BuildLifecycleView resolves the stage and packages it for clients
func BuildLifecycleView(in entities.LifecycleInput) *entities.LifecycleView {
	stage := ResolveLifecycle(in)
	view := &entities.LifecycleView{
		Stage:    stage,
		Overlay:  OverlayFor(stage),
		Identity: in.Identity,
	}
	if in.Identity != nil && in.Identity.HasRole() {
		view.RequiredFields = entities.RequiredProfileFields(in.Identity.Role)
	}
	if stage == entities.StageNeedsProfileCompletion {
		if in.Profile == nil {
			view.MissingFields = entities.RequiredProfileFields(in.Identity.Role)
		} else {
			view.MissingFields = in.Profile.MissingFields(in.Identity.Role)
		}
	}
	return view
}
