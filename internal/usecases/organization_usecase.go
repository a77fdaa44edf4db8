package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/domain/repositories"
	"menvo.backend/pkg/logger"
	"menvo.backend/pkg/utils"
)

const maxSlugAttempts = 20

// OrganizationUsecase handles company and recruiter organizations
type OrganizationUsecase struct {
	orgRepo  repositories.OrganizationRepository
	userRepo repositories.UserRepository
	uow      repositories.UnitOfWork
}

func NewOrganizationUsecase(
	orgRepo repositories.OrganizationRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *OrganizationUsecase {
	return &OrganizationUsecase{orgRepo: orgRepo, userRepo: userRepo, uow: uow}
}

// Create registers an organization owned by the caller. New organizations wait for admin approval.
func (u *OrganizationUsecase) Create(ctx context.Context, owner *entities.IdentitySnapshot, input *entities.CreateOrganizationInput) (*entities.OrganizationDetail, error) {
	name := strings.TrimSpace(input.Name)
	base := utils.Slugify(name)
	if base == "" {
		return nil, domainerrors.FieldError("name", "name must contain letters or digits")
	}

	slug, err := u.uniqueSlug(ctx, base)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	org := &entities.Organization{
		ID:        utils.GenerateUUIDv7(),
		Name:      name,
		Slug:      slug,
		OwnerID:   owner.UserID,
		Status:    entities.OrganizationStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if d := strings.TrimSpace(input.Description); d != "" {
		org.Description = null.StringFrom(d)
	}
	if w := strings.TrimSpace(input.Website); w != "" {
		org.Website = null.StringFrom(w)
	}
	member := &entities.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         owner.UserID,
		Email:          owner.Email,
		Role:           entities.OrgMemberOwner,
		CreatedAt:      now,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.orgRepo.Create(txCtx, org); err != nil {
			return err
		}
		return u.orgRepo.AddMember(txCtx, member)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, domainerrors.Conflict("an organization with this name already exists")
		}
		return nil, err
	}

	logger.Info(ctx, "organization created", zap.String("organization_id", org.ID.String()), zap.String("slug", slug))
	return &entities.OrganizationDetail{Organization: org, Members: []*entities.OrganizationMember{member}}, nil
}

// Get returns an organization. Only active ones are public; members are listed to members and admins.
func (u *OrganizationUsecase) Get(ctx context.Context, viewer *entities.IdentitySnapshot, id uuid.UUID) (*entities.OrganizationDetail, error) {
	org, err := u.orgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("organization not found")
		}
		return nil, err
	}

	privileged := false
	if viewer != nil {
		privileged = viewer.Role == entities.UserRoleAdmin
		if !privileged {
			if _, err := u.orgRepo.GetMember(ctx, id, viewer.UserID); err == nil {
				privileged = true
			} else if !errors.Is(err, domainerrors.ErrNotFound) {
				return nil, err
			}
		}
	}

	if org.Status != entities.OrganizationStatusActive && !privileged {
		return nil, domainerrors.NotFound("organization not found")
	}

	detail := &entities.OrganizationDetail{Organization: org}
	if privileged {
		members, err := u.orgRepo.ListMembers(ctx, id)
		if err != nil {
			return nil, err
		}
		detail.Members = members
	}
	return detail, nil
}

// ListActive lists approved organizations
func (u *OrganizationUsecase) ListActive(ctx context.Context, page, limit int) ([]*entities.Organization, int64, error) {
	p := utils.GetPaginationParams(page, limit)
	return u.orgRepo.List(ctx, entities.OrganizationStatusActive, p.Page, p.Limit)
}

// AddMember adds an existing user to the organization. Owners and org admins may do this.
func (u *OrganizationUsecase) AddMember(ctx context.Context, actor *entities.IdentitySnapshot, orgID uuid.UUID, input *entities.AddOrganizationMemberInput) (*entities.OrganizationMember, error) {
	if _, err := u.orgRepo.GetByID(ctx, orgID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("organization not found")
		}
		return nil, err
	}

	if actor.Role != entities.UserRoleAdmin {
		self, err := u.orgRepo.GetMember(ctx, orgID, actor.UserID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.Forbidden("only organization owners and admins can add members")
			}
			return nil, err
		}
		if !self.Role.CanManage() {
			return nil, domainerrors.Forbidden("only organization owners and admins can add members")
		}
	}

	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.FieldError("email", "no user with this email")
		}
		return nil, err
	}

	if _, err := u.orgRepo.GetMember(ctx, orgID, user.ID); err == nil {
		return nil, domainerrors.Conflict("user is already a member")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	member := &entities.OrganizationMember{
		OrganizationID: orgID,
		UserID:         user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Role:           entities.OrganizationMemberRole(input.Role),
		CreatedAt:      time.Now().UTC(),
	}
	if err := u.orgRepo.AddMember(ctx, member); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, domainerrors.Conflict("user is already a member")
		}
		return nil, err
	}
	return member, nil
}

// UpdateStatus moderates an organization
func (u *OrganizationUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, input *entities.UpdateOrganizationStatusInput) (*entities.Organization, error) {
	status := entities.OrganizationStatus(input.Status)
	if !status.IsValid() {
		return nil, domainerrors.FieldError("status", "status must be pending, active or suspended")
	}
	org, err := u.orgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("organization not found")
		}
		return nil, err
	}
	if err := u.orgRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	org.Status = status
	return org, nil
}

func (u *OrganizationUsecase) uniqueSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		exists, err := u.orgRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return "", domainerrors.Conflict("an organization with this name already exists")
}
