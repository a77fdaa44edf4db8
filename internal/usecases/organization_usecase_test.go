package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/usecases"
)

func fixedTime() time.Time {
	return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestOrganizationUsecase_Create_UniqueSlugInTransaction(t *testing.T) {
	orgs := new(MockOrganizationRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewOrganizationUsecase(orgs, new(MockUserRepository), uow)
	ctx := context.Background()
	owner := &entities.IdentitySnapshot{UserID: uuid.New(), Email: "owner@acme.io", Role: entities.UserRoleCompany}

	orgs.On("SlugExists", ctx, "acme-talent").Return(true, nil).Once()
	orgs.On("SlugExists", ctx, "acme-talent-2").Return(false, nil).Once()
	uow.On("Do", ctx, mock.Anything).Return(nil).Once()
	orgs.On("Create", ctx, mock.MatchedBy(func(o *entities.Organization) bool {
		return o.Slug == "acme-talent-2" && o.Status == entities.OrganizationStatusPending && o.OwnerID == owner.UserID
	})).Return(nil).Once()
	orgs.On("AddMember", ctx, mock.MatchedBy(func(m *entities.OrganizationMember) bool {
		return m.UserID == owner.UserID && m.Role == entities.OrgMemberOwner
	})).Return(nil).Once()

	detail, err := uc.Create(ctx, owner, &entities.CreateOrganizationInput{Name: "Acme Talent!", Website: "https://acme.io"})
	require.NoError(t, err)
	assert.Equal(t, "acme-talent-2", detail.Slug)
	assert.Equal(t, "https://acme.io", detail.Website.String)
	assert.Len(t, detail.Members, 1)
	orgs.AssertExpectations(t)
	uow.AssertExpectations(t)

	_, err = uc.Create(ctx, owner, &entities.CreateOrganizationInput{Name: "!!!"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestOrganizationUsecase_Get_Visibility(t *testing.T) {
	orgs := new(MockOrganizationRepository)
	uc := usecases.NewOrganizationUsecase(orgs, new(MockUserRepository), new(MockUnitOfWork))
	ctx := context.Background()

	pending := &entities.Organization{ID: uuid.New(), Status: entities.OrganizationStatusPending}
	memberID := uuid.New()
	orgs.On("GetByID", ctx, pending.ID).Return(pending, nil)
	orgs.On("GetMember", ctx, pending.ID, memberID).Return(&entities.OrganizationMember{UserID: memberID, Role: entities.OrgMemberMember}, nil)
	orgs.On("GetMember", ctx, pending.ID, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	orgs.On("ListMembers", ctx, pending.ID).Return([]*entities.OrganizationMember{{UserID: memberID}}, nil)

	_, err := uc.Get(ctx, nil, pending.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = uc.Get(ctx, &entities.IdentitySnapshot{UserID: uuid.New(), Role: entities.UserRoleMentee}, pending.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	detail, err := uc.Get(ctx, &entities.IdentitySnapshot{UserID: memberID, Role: entities.UserRoleCompany}, pending.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Members, 1)
}

func TestOrganizationUsecase_AddMember(t *testing.T) {
	orgs := new(MockOrganizationRepository)
	users := new(MockUserRepository)
	uc := usecases.NewOrganizationUsecase(orgs, users, new(MockUnitOfWork))
	ctx := context.Background()

	org := &entities.Organization{ID: uuid.New(), Status: entities.OrganizationStatusActive}
	ownerID, plainID := uuid.New(), uuid.New()
	invitee := &entities.User{ID: uuid.New(), Email: "dev@acme.io", Name: "Dev"}

	orgs.On("GetByID", ctx, org.ID).Return(org, nil)
	orgs.On("GetMember", ctx, org.ID, ownerID).Return(&entities.OrganizationMember{Role: entities.OrgMemberOwner}, nil)
	orgs.On("GetMember", ctx, org.ID, plainID).Return(&entities.OrganizationMember{Role: entities.OrgMemberMember}, nil)
	orgs.On("GetMember", ctx, org.ID, invitee.ID).Return(nil, domainerrors.ErrNotFound).Once()
	users.On("GetByEmail", ctx, "dev@acme.io").Return(invitee, nil)
	users.On("GetByEmail", ctx, "nobody@acme.io").Return(nil, domainerrors.ErrNotFound)
	orgs.On("AddMember", ctx, mock.AnythingOfType("*entities.OrganizationMember")).Return(nil).Once()

	_, err := uc.AddMember(ctx, &entities.IdentitySnapshot{UserID: plainID, Role: entities.UserRoleCompany}, org.ID,
		&entities.AddOrganizationMemberInput{Email: "dev@acme.io", Role: "member"})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	owner := &entities.IdentitySnapshot{UserID: ownerID, Role: entities.UserRoleCompany}
	_, err = uc.AddMember(ctx, owner, org.ID, &entities.AddOrganizationMemberInput{Email: "nobody@acme.io", Role: "member"})
	assert.Contains(t, fieldsOf(t, err), "email")

	member, err := uc.AddMember(ctx, owner, org.ID, &entities.AddOrganizationMemberInput{Email: "DEV@acme.io", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, entities.OrgMemberAdmin, member.Role)
	assert.Equal(t, "Dev", member.Name)

	orgs.On("GetMember", ctx, org.ID, invitee.ID).Return(&entities.OrganizationMember{}, nil).Once()
	_, err = uc.AddMember(ctx, owner, org.ID, &entities.AddOrganizationMemberInput{Email: "dev@acme.io", Role: "member"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestOrganizationUsecase_UpdateStatus(t *testing.T) {
	orgs := new(MockOrganizationRepository)
	uc := usecases.NewOrganizationUsecase(orgs, new(MockUserRepository), new(MockUnitOfWork))
	ctx := context.Background()
	org := &entities.Organization{ID: uuid.New(), Status: entities.OrganizationStatusPending}

	_, err := uc.UpdateStatus(ctx, org.ID, &entities.UpdateOrganizationStatusInput{Status: "deleted"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	orgs.On("GetByID", ctx, org.ID).Return(org, nil).Once()
	orgs.On("UpdateStatus", ctx, org.ID, entities.OrganizationStatusActive).Return(nil).Once()
	updated, err := uc.UpdateStatus(ctx, org.ID, &entities.UpdateOrganizationStatusInput{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, entities.OrganizationStatusActive, updated.Status)
}
