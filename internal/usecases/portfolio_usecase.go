package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/domain/policy"
	"obra-connect.backend/internal/domain/repositories"
	"obra-connect.backend/pkg/logger"
	"obra-connect.backend/pkg/utils"
)

// PortfolioUsecase manages the portfolio items of a professional
type PortfolioUsecase struct {
	portfolioRepo    repositories.PortfolioRepository
	professionalRepo repositories.ProfessionalRepository
	guard            *OwnershipGuard
	images           ImageHost
}

// NewPortfolioUsecase creates a new portfolio usecase
func NewPortfolioUsecase(
	portfolioRepo repositories.PortfolioRepository,
	professionalRepo repositories.ProfessionalRepository,
	guard *OwnershipGuard,
	images ImageHost,
) *PortfolioUsecase {
	return &PortfolioUsecase{
		portfolioRepo:    portfolioRepo,
		professionalRepo: professionalRepo,
		guard:            guard,
		images:           images,
	}
}

// List returns the items of a visible professional
func (u *PortfolioUsecase) List(ctx context.Context, professionalID uuid.UUID) ([]*entities.PortfolioItem, error) {
	if _, err := u.professionalRepo.GetByID(ctx, professionalID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("professional not found")
		}
		return nil, err
	}
	return u.portfolioRepo.ListByProfessional(ctx, professionalID)
}

// Create adds an item to the professional's portfolio
func (u *PortfolioUsecase) Create(ctx context.Context, requester *entities.User, professionalID uuid.UUID, input *entities.CreatePortfolioItemInput) (*entities.PortfolioItem, error) {
	if err := u.guard.AuthorizeProfessional(ctx, requester, professionalID, policy.ActionPortfolioManage); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, requiredFieldsError([]string{"title"})
	}
	owners, err := u.imageOwners(ctx, requester, professionalID)
	if err != nil {
		return nil, err
	}
	if err := checkImageOwnership(nil, input.Images, owners); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &entities.PortfolioItem{
		ID:              utils.GenerateUUIDv7(),
		ProfessionalID:  professionalID,
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		Images:          input.Images,
		ProjectType:     strings.TrimSpace(input.ProjectType),
		ProjectArea:     strings.TrimSpace(input.ProjectArea),
		ProjectDuration: strings.TrimSpace(input.ProjectDuration),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if item.Images == nil {
		item.Images = []entities.PortfolioImage{}
	}
	if err := u.portfolioRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update edits an item; images dropped from the list are released
func (u *PortfolioUsecase) Update(ctx context.Context, requester *entities.User, professionalID, itemID uuid.UUID, input *entities.UpdatePortfolioItemInput) (*entities.PortfolioItem, error) {
	item, err := u.authorizedItem(ctx, requester, professionalID, itemID)
	if err != nil {
		return nil, err
	}

	var removed []entities.PortfolioImage
	applyString(&item.Title, input.Title)
	applyString(&item.Description, input.Description)
	applyString(&item.ProjectType, input.ProjectType)
	applyString(&item.ProjectArea, input.ProjectArea)
	applyString(&item.ProjectDuration, input.ProjectDuration)
	owners, err := u.imageOwners(ctx, requester, professionalID)
	if err != nil {
		return nil, err
	}
	if input.Images != nil {
		if err := checkImageOwnership(item.Images, *input.Images, owners); err != nil {
			return nil, err
		}
		removed = droppedImages(item.Images, *input.Images)
		item.Images = *input.Images
	}
	if item.Title == "" {
		return nil, requiredFieldsError([]string{"title"})
	}
	item.UpdatedAt = time.Now()

	if err := u.portfolioRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	u.releaseImages(ctx, removed, owners)
	return item, nil
}

// Delete hard-deletes an item and asks the image host to drop its images
func (u *PortfolioUsecase) Delete(ctx context.Context, requester *entities.User, professionalID, itemID uuid.UUID) error {
	item, err := u.authorizedItem(ctx, requester, professionalID, itemID)
	if err != nil {
		return err
	}
	owners, err := u.imageOwners(ctx, requester, professionalID)
	if err != nil {
		return err
	}
	if err := u.portfolioRepo.Delete(ctx, item.ID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("portfolio item not found")
		}
		return err
	}
	u.releaseImages(ctx, item.Images, owners)
	return nil
}

func (u *PortfolioUsecase) authorizedItem(ctx context.Context, requester *entities.User, professionalID, itemID uuid.UUID) (*entities.PortfolioItem, error) {
	if err := u.guard.AuthorizeProfessional(ctx, requester, professionalID, policy.ActionPortfolioManage); err != nil {
		return nil, err
	}
	item, err := u.portfolioRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("portfolio item not found")
		}
		return nil, err
	}
	// an item reached through another professional's path does not exist there
	if item.ProfessionalID != professionalID {
		return nil, domainerrors.NotFound("portfolio item not found")
	}
	return item, nil
}

// imageOwners lists the accounts whose uploads may back the professional's
// items: the requester and the account owning the profile.
func (u *PortfolioUsecase) imageOwners(ctx context.Context, requester *entities.User, professionalID uuid.UUID) ([]uuid.UUID, error) {
	owner, err := u.professionalRepo.GetOwnerUserID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("professional not found")
		}
		return nil, err
	}
	owners := []uuid.UUID{requester.ID}
	if owner.Valid && owner.UUID != requester.ID {
		owners = append(owners, owner.UUID)
	}
	return owners, nil
}

// checkImageOwnership rejects images added to the list that were not uploaded
// by one of owners. Images already on the item are accepted as they are.
func checkImageOwnership(before, after []entities.PortfolioImage, owners []uuid.UUID) error {
	existing := make(map[string]bool, len(before))
	for _, img := range before {
		existing[img.ID] = true
	}
	for _, img := range after {
		if img.ID == "" || existing[img.ID] {
			continue
		}
		if !imageOwnedBy(img.ID, owners...) {
			return domainerrors.FieldError("images", "image id "+img.ID+" was not uploaded by this account")
		}
	}
	return nil
}

// releaseImages is best effort; failures are logged and swallowed. Ids outside
// the owners' upload folders are never sent to the host.
func (u *PortfolioUsecase) releaseImages(ctx context.Context, images []entities.PortfolioImage, owners []uuid.UUID) {
	if u.images == nil {
		return
	}
	for _, img := range images {
		if img.ID == "" {
			continue
		}
		if !imageOwnedBy(img.ID, owners...) {
			logger.Warn(ctx, "Image delete skipped for foreign id", zap.String("image_id", img.ID))
			continue
		}
		if err := u.images.Delete(ctx, img.ID); err != nil {
			logger.Warn(ctx, "Image delete failed", zap.String("image_id", img.ID), zap.Error(err))
		}
	}
}

func droppedImages(before, after []entities.PortfolioImage) []entities.PortfolioImage {
	kept := make(map[string]bool, len(after))
	for _, img := range after {
		kept[img.ID] = true
	}
	var out []entities.PortfolioImage
	for _, img := range before {
		if !kept[img.ID] {
			out = append(out, img)
		}
	}
	return out
}
