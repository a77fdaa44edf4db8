package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
)

func seedUser(t *testing.T, repo *UserRepository, email string, role entities.UserRole) *entities.User {
	t.Helper()
	now := time.Now().UTC()
	u := &entities.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "User " + email,
		PasswordHash: "hash",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_CRUDAndList(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo, "ana@menvo.com.br", entities.UserRoleNone)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.Equal(t, entities.UserRoleNone, byID.Role)

	byEmail, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	u.Name = "Ana Souza"
	require.NoError(t, repo.Update(ctx, u))
	require.NoError(t, repo.UpdateRole(ctx, u.ID, entities.UserRoleMentor))
	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "hash2"))

	updated, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana Souza", updated.Name)
	require.Equal(t, entities.UserRoleMentor, updated.Role)
	require.Equal(t, "hash2", updated.PasswordHash)

	seedUser(t, repo, "bruno@menvo.com.br", entities.UserRoleMentee)

	items, total, err := repo.List(ctx, entities.UserFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, items, 2)

	items, total, err = repo.List(ctx, entities.UserFilter{Search: "SOUZA"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, u.ID, items[0].ID)

	items, total, err = repo.List(ctx, entities.UserFilter{Role: entities.UserRoleMentee, Page: 1, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "bruno@menvo.com.br", items[0].Email)
}

func TestUserRepository_DuplicateEmailIsConflict(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)

	seedUser(t, repo, "dup@menvo.com.br", entities.UserRoleNone)

	err := repo.Create(context.Background(), &entities.User{
		ID:           uuid.New(),
		Email:        "dup@menvo.com.br",
		Name:         "Other",
		PasswordHash: "hash",
	})
	require.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestUserRepository_CountByRole(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)

	seedUser(t, repo, "a@menvo.com.br", entities.UserRoleMentee)
	seedUser(t, repo, "b@menvo.com.br", entities.UserRoleMentee)
	seedUser(t, repo, "c@menvo.com.br", entities.UserRoleMentor)
	seedUser(t, repo, "d@menvo.com.br", entities.UserRoleNone)

	counts, err := repo.CountByRole(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), counts["mentee"])
	require.Equal(t, int64(1), counts["mentor"])
	require.Equal(t, int64(1), counts[""])
}

func TestUserRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "missing@menvo.com.br")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, &entities.User{ID: id, Name: "x"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.UpdateRole(ctx, id, entities.UserRoleMentee)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.UpdatePassword(ctx, id, "hash")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.AssignInitialRole(ctx, id, entities.UserRoleMentee)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_AssignInitialRoleOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo, "carla@menvo.com.br", entities.UserRoleNone)

	require.NoError(t, repo.AssignInitialRole(ctx, u.ID, entities.UserRoleMentor))
	err := repo.AssignInitialRole(ctx, u.ID, entities.UserRoleMentee)
	require.ErrorIs(t, err, domainerrors.ErrConflict)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, entities.UserRoleMentor, got.Role)
}
