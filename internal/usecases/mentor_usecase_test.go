package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/usecases"
)

func TestMentorUsecase_Search(t *testing.T) {
	f := newBookingFixture(t)
	uc := usecases.NewMentorUsecase(f.users, f.profiles, f.availability)
	ctx := context.Background()

	f.profiles.On("SearchMentors", ctx, entities.MentorSearchFilter{Expertise: "go", Page: 1, Limit: 20}).
		Return([]*entities.Profile{{UserID: f.mentor.ID, FirstName: "Ana", LastName: "Souza"}}, int64(1), nil).Once()

	cards, total, err := uc.Search(ctx, entities.MentorSearchFilter{Expertise: "go"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, cards, 1)
	assert.Equal(t, "Ana Souza", cards[0].Name)
}

func TestMentorUsecase_GetDetail(t *testing.T) {
	f := newBookingFixture(t)
	uc := usecases.NewMentorUsecase(f.users, f.profiles, f.availability)
	ctx := context.Background()

	detail, err := uc.GetDetail(ctx, f.mentor.ID)
	require.NoError(t, err)
	assert.Equal(t, f.mentor.ID, detail.UserID)
	assert.Len(t, detail.Availability, 1)

	// mentees are never listed as mentors
	_, err = uc.GetDetail(ctx, f.mentee.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	ghost := uuid.New()
	f.users.On("GetByID", ctx, ghost).Return(nil, domainerrors.ErrNotFound).Once()
	_, err = uc.GetDetail(ctx, ghost)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
