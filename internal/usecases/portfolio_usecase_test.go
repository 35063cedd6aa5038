package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/usecases"
)

type portfolioFixture struct {
	portfolio     *MockPortfolioRepository
	professionals *MockProfessionalRepository
	images        *MockImageHost
	uc            *usecases.PortfolioUsecase

	owner          *entities.User
	professionalID uuid.UUID
}

func newPortfolioFixture() *portfolioFixture {
	f := &portfolioFixture{
		portfolio:      new(MockPortfolioRepository),
		professionals:  new(MockProfessionalRepository),
		images:         new(MockImageHost),
		owner:          &entities.User{ID: uuid.New(), Role: entities.UserRoleProfessional},
		professionalID: uuid.New(),
	}
	f.professionals.On("GetOwnerUserID", mock.Anything, f.professionalID).
		Return(uuid.NullUUID{UUID: f.owner.ID, Valid: true}, nil)
	guard := usecases.NewOwnershipGuard(f.professionals, new(MockCompanyRepository))
	f.uc = usecases.NewPortfolioUsecase(f.portfolio, f.professionals, guard, f.images)
	return f
}

// imageID names an object uploaded by the profile owner
func (f *portfolioFixture) imageID(name string) string {
	return usecases.FolderPortfolio + "/" + f.owner.ID.String() + "/" + name
}

func (f *portfolioFixture) item(images ...string) *entities.PortfolioItem {
	out := &entities.PortfolioItem{ID: uuid.New(), ProfessionalID: f.professionalID, Title: "Reforma cozinha"}
	for _, id := range images {
		out.Images = append(out.Images, entities.PortfolioImage{ID: id, URL: "https://img/" + id})
	}
	return out
}

func TestPortfolioUsecase_List(t *testing.T) {
	f := newPortfolioFixture()
	ctx := context.Background()

	f.professionals.On("GetByID", ctx, f.professionalID).Return(&entities.Professional{ID: f.professionalID}, nil)
	f.portfolio.On("ListByProfessional", ctx, f.professionalID).Return([]*entities.PortfolioItem{f.item()}, nil)
	items, err := f.uc.List(ctx, f.professionalID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	missing := uuid.New()
	f.professionals.On("GetByID", ctx, missing).Return(nil, domainerrors.ErrNotFound)
	_, err = f.uc.List(ctx, missing)
	requireCode(t, err, domainerrors.CodeNotFound)
}

func TestPortfolioUsecase_Create(t *testing.T) {
	f := newPortfolioFixture()
	ctx := context.Background()

	f.portfolio.On("Create", ctx, mock.MatchedBy(func(i *entities.PortfolioItem) bool {
		return i.ProfessionalID == f.professionalID && i.Title == "Telhado" && i.Images != nil
	})).Return(nil)

	item, err := f.uc.Create(ctx, f.owner, f.professionalID, &entities.CreatePortfolioItemInput{Title: " Telhado "})
	require.NoError(t, err)
	assert.Equal(t, "Telhado", item.Title)
	assert.Empty(t, item.Images)

	stranger := &entities.User{ID: uuid.New(), Role: entities.UserRoleProfessional}
	_, err = f.uc.Create(ctx, stranger, f.professionalID, &entities.CreatePortfolioItemInput{Title: "Telhado"})
	requireCode(t, err, domainerrors.CodeForbidden)

	client := &entities.User{ID: f.owner.ID, Role: entities.UserRoleClient}
	_, err = f.uc.Create(ctx, client, f.professionalID, &entities.CreatePortfolioItemInput{Title: "Telhado"})
	requireCode(t, err, domainerrors.CodeForbidden)

	_, err = f.uc.Create(ctx, f.owner, f.professionalID, &entities.CreatePortfolioItemInput{Title: "  "})
	requireCode(t, err, domainerrors.CodeValidation)
	f.portfolio.AssertNumberOfCalls(t, "Create", 1)
}

func TestPortfolioUsecase_Update_ReleasesDroppedImages(t *testing.T) {
	f := newPortfolioFixture()
	ctx := context.Background()

	a, b, c := f.imageID("a.jpg"), f.imageID("b.jpg"), f.imageID("c.jpg")
	item := f.item(a, b)
	f.portfolio.On("GetByID", ctx, item.ID).Return(item, nil)
	f.portfolio.On("Update", ctx, item).Return(nil)
	f.images.On("Delete", ctx, a).Return(errors.New("host down"))

	kept := []entities.PortfolioImage{{ID: b, URL: "https://img/b"}, {ID: c, URL: "https://img/c"}}
	title := "Reforma banheiro"
	updated, err := f.uc.Update(ctx, f.owner, f.professionalID, item.ID, &entities.UpdatePortfolioItemInput{Title: &title, Images: &kept})
	require.NoError(t, err)
	assert.Equal(t, "Reforma banheiro", updated.Title)
	assert.Len(t, updated.Images, 2)
	f.images.AssertCalled(t, "Delete", ctx, a)
	f.images.AssertNumberOfCalls(t, "Delete", 1)
}

func TestPortfolioUsecase_ForeignImageIDs(t *testing.T) {
	f := newPortfolioFixture()
	ctx := context.Background()
	stranger := uuid.New()

	foreign := []string{
		usecases.FolderPortfolio + "/" + stranger.String() + "/x.jpg",
		usecases.FolderPortfolio + "/x.jpg",
		"uploads/" + f.owner.ID.String() + "/x.jpg",
		usecases.FolderPortfolio + "/" + f.owner.ID.String() + "/..",
		usecases.FolderPortfolio + "/" + f.owner.ID.String() + "/a/b.jpg",
		"../" + f.owner.ID.String() + "/x.jpg",
	}
	for _, id := range foreign {
		t.Run(id, func(t *testing.T) {
			_, err := f.uc.Create(ctx, f.owner, f.professionalID, &entities.CreatePortfolioItemInput{
				Title:  "Telhado",
				Images: []entities.PortfolioImage{{ID: id, URL: "https://img/x"}},
			})
			requireCode(t, err, domainerrors.CodeValidation)
		})
	}
	f.portfolio.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	// adding a foreign id on update is rejected before anything is written
	item := f.item(f.imageID("a.jpg"))
	f.portfolio.On("GetByID", ctx, item.ID).Return(item, nil)
	swapped := []entities.PortfolioImage{{ID: foreign[0], URL: "https://img/x"}}
	_, err := f.uc.Update(ctx, f.owner, f.professionalID, item.ID, &entities.UpdatePortfolioItemInput{Images: &swapped})
	requireCode(t, err, domainerrors.CodeValidation)
	f.portfolio.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	// a stored foreign id never reaches the image host
	legacy := f.item(foreign[0], f.imageID("b.jpg"))
	f.portfolio.On("GetByID", ctx, legacy.ID).Return(legacy, nil)
	f.portfolio.On("Delete", ctx, legacy.ID).Return(nil)
	f.images.On("Delete", ctx, f.imageID("b.jpg")).Return(nil)
	require.NoError(t, f.uc.Delete(ctx, f.owner, f.professionalID, legacy.ID))
	f.images.AssertNotCalled(t, "Delete", mock.Anything, foreign[0])
	f.images.AssertNumberOfCalls(t, "Delete", 1)
}

func TestPortfolioUsecase_AdminUploadsAccepted(t *testing.T) {
	f := newPortfolioFixture()
	ctx := context.Background()

	admin := &entities.User{ID: uuid.New(), Role: entities.UserRoleAdmin}
	adminImage := usecases.FolderPortfolio + "/" + admin.ID.String() + "/a.jpg"
	f.portfolio.On("Create", ctx, mock.Anything).Return(nil)
	item, err := f.uc.Create(ctx, admin, f.professionalID, &entities.CreatePortfolioItemInput{
		Title: "Telhado",
		Images: []entities.PortfolioImage{
			{ID: adminImage, URL: "https://img/a"},
			{ID: f.imageID("b.jpg"), URL: "https://img/b"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, item.Images, 2)
}

func TestPortfolioUsecase_ItemOfAnotherProfessional(t *testing.T) {
	f := newPortfolioFixture()
	ctx := context.Background()

	foreign := f.item()
	foreign.ProfessionalID = uuid.New()
	f.portfolio.On("GetByID", ctx, foreign.ID).Return(foreign, nil)

	title := "x"
	_, err := f.uc.Update(ctx, f.owner, f.professionalID, foreign.ID, &entities.UpdatePortfolioItemInput{Title: &title})
	requireCode(t, err, domainerrors.CodeNotFound)

	err = f.uc.Delete(ctx, f.owner, f.professionalID, foreign.ID)
	requireCode(t, err, domainerrors.CodeNotFound)
	f.portfolio.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPortfolioUsecase_Delete(t *testing.T) {
	f := newPortfolioFixture()
	ctx := context.Background()

	item := f.item(f.imageID("a.jpg"), f.imageID("b.jpg"))
	f.portfolio.On("GetByID", ctx, item.ID).Return(item, nil)
	f.portfolio.On("Delete", ctx, item.ID).Return(nil)
	f.images.On("Delete", ctx, mock.Anything).Return(nil)

	require.NoError(t, f.uc.Delete(ctx, f.owner, f.professionalID, item.ID))
	f.images.AssertNumberOfCalls(t, "Delete", 2)

	admin := &entities.User{ID: uuid.New(), Role: entities.UserRoleAdmin}
	missing := uuid.New()
	f.portfolio.On("GetByID", ctx, missing).Return(nil, domainerrors.ErrNotFound)
	err := f.uc.Delete(ctx, admin, f.professionalID, missing)
	requireCode(t, err, domainerrors.CodeNotFound)
}
