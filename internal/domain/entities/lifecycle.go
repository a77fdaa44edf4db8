package entities

// LifecycleStage is the onboarding state of the signed-in user. Exactly one applies at a time.
type LifecycleStage string

const (
	StageLoading                LifecycleStage = "LOADING"
	StageNeedsRoleSelection     LifecycleStage = "NEEDS_ROLE_SELECTION"
	StageNeedsProfileCompletion LifecycleStage = "NEEDS_PROFILE_COMPLETION"
	StageNeedsVerification      LifecycleStage = "NEEDS_VERIFICATION"
	StageReady                  LifecycleStage = "READY"
)

// OverlayKind names what the client must render above the page
type OverlayKind string

const (
	OverlaySpinner            OverlayKind = "spinner"
	OverlayRoleSelection      OverlayKind = "role_selection"
	OverlayProfileCompletion  OverlayKind = "profile_completion"
	OverlayVerificationBanner OverlayKind = "verification_banner"
	OverlayNone               OverlayKind = "none"
)

// Overlay describes the single overlay shown for a stage
type Overlay struct {
	Kind           OverlayKind `json:"kind"`
	Blocking       bool        `json:"blocking"`
	Dismissible    bool        `json:"dismissible"`
	ContentMounted bool        `json:"contentMounted"`
}

// LifecycleInput is everything the resolver looks at.
// ProfileLoaded is false while the profile fetch has not succeeded; a missing profile is a successful load.
type LifecycleInput struct {
	Identity      *IdentitySnapshot
	Profile       *Profile
	ProfileLoaded bool
}

// LifecycleView is the resolved stage sent to clients
type LifecycleView struct {
	Stage          LifecycleStage    `json:"stage"`
	Overlay        Overlay           `json:"overlay"`
	Identity       *IdentitySnapshot `json:"identity,omitempty"`
	RequiredFields []string          `json:"requiredFields,omitempty"`
	MissingFields  []string          `json:"missingFields,omitempty"`
}
