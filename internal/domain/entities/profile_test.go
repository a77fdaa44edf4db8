package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func TestProfile_MissingFieldsByRole(t *testing.T) {
	p := &Profile{FirstName: "Ana", LastName: "Souza", Bio: "Backend engineer", City: "Recife", Country: "BR"}

	assert.Empty(t, p.MissingFields(UserRoleMentee))
	assert.Equal(t, []string{FieldExpertiseAreas, FieldPresentationVideoURL}, p.MissingFields(UserRoleMentor))

	p.ExpertiseAreas = []string{"  "}
	assert.Contains(t, p.MissingFields(UserRoleMentor), FieldExpertiseAreas)

	p.ExpertiseAreas = []string{"Go"}
	p.PresentationVideoURL = "https://youtu.be/x"
	p.RefreshCompleteness(UserRoleMentor)
	assert.True(t, p.IsProfileComplete)

	p.Bio = "   "
	p.RefreshCompleteness(UserRoleMentor)
	assert.False(t, p.IsProfileComplete)
}

func TestProfile_MentorCard(t *testing.T) {
	verified := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	p := &Profile{FirstName: "Ana", LastName: "Souza", PhoneNumber: "+55 81 9999", VerifiedAt: null.TimeFrom(verified)}
	assert.True(t, p.IsVerified())

	card := NewMentorCard(p)
	assert.Equal(t, "Ana Souza", card.Name)
	assert.Equal(t, verified, card.VerifiedAt)
}

func TestDocumentUploadRules(t *testing.T) {
	assert.True(t, UploadRules[DocumentKindCV].Allows(".pdf"))
	assert.False(t, UploadRules[DocumentKindCV].Allows(".png"))
	assert.True(t, UploadRules[DocumentKindAvatar].Allows(".webp"))
	assert.Equal(t, int64(5<<20), UploadRules[DocumentKindAvatar].MaxBytes)
}
