package usecases_test

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"obra-connect.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, filter entities.AdminUserFilter) ([]*entities.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (map[entities.UserRole]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.UserRole]int64), args.Error(1)
}

func (m *MockUserRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ProfessionalRepository
type MockProfessionalRepository struct {
	mock.Mock
}

func (m *MockProfessionalRepository) Create(ctx context.Context, p *entities.Professional) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfessionalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Professional, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Professional, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) GetOwnerUserID(ctx context.Context, id uuid.UUID) (uuid.NullUUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.NullUUID), args.Error(1)
}

func (m *MockProfessionalRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	args := m.Called(ctx, cpf)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfessionalRepository) List(ctx context.Context, filter entities.ProfessionalFilter) ([]*entities.Professional, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Professional), args.Get(1).(int64), args.Error(2)
}

func (m *MockProfessionalRepository) Update(ctx context.Context, p *entities.Professional) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfessionalRepository) ReplaceSubcategories(ctx context.Context, id uuid.UUID, ids []string) error {
	args := m.Called(ctx, id, ids)
	return args.Error(0)
}

func (m *MockProfessionalRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, c *entities.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Company), args.Error(1)
}

func (m *MockCompanyRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Company), args.Error(1)
}

func (m *MockCompanyRepository) GetOwnerUserID(ctx context.Context, id uuid.UUID) (uuid.NullUUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.NullUUID), args.Error(1)
}

func (m *MockCompanyRepository) ExistsByCNPJ(ctx context.Context, cnpj string) (bool, error) {
	args := m.Called(ctx, cnpj)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) List(ctx context.Context, filter entities.CompanyFilter) ([]*entities.Company, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Company), args.Get(1).(int64), args.Error(2)
}

func (m *MockCompanyRepository) Update(ctx context.Context, c *entities.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock TaxonomyRepository
type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Category), args.Error(1)
}

func (m *MockTaxonomyRepository) GetCategory(ctx context.Context, id string) (*entities.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockTaxonomyRepository) ListSubcategories(ctx context.Context, categoryID string) ([]*entities.Subcategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Subcategory), args.Error(1)
}

func (m *MockTaxonomyRepository) GetSubcategoriesByIDs(ctx context.Context, ids []string) ([]*entities.Subcategory, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Subcategory), args.Error(1)
}

func (m *MockTaxonomyRepository) ListCities(ctx context.Context, state string) ([]*entities.City, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.City), args.Error(1)
}

func (m *MockTaxonomyRepository) UpsertCategories(ctx context.Context, categories []*entities.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) UpsertCities(ctx context.Context, cities []*entities.City) error {
	args := m.Called(ctx, cities)
	return args.Error(0)
}

// Mock PortfolioRepository
type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) Create(ctx context.Context, item *entities.PortfolioItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPortfolioRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PortfolioItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PortfolioItem), args.Error(1)
}

func (m *MockPortfolioRepository) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*entities.PortfolioItem, error) {
	args := m.Called(ctx, professionalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PortfolioItem), args.Error(1)
}

func (m *MockPortfolioRepository) Update(ctx context.Context, item *entities.PortfolioItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPortfolioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPortfolioRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock IndicationRepository
type MockIndicationRepository struct {
	mock.Mock
}

func (m *MockIndicationRepository) Create(ctx context.Context, ind *entities.Indication) error {
	args := m.Called(ctx, ind)
	return args.Error(0)
}

func (m *MockIndicationRepository) Exists(ctx context.Context, fromID, toID uuid.UUID) (bool, error) {
	args := m.Called(ctx, fromID, toID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIndicationRepository) ListByTarget(ctx context.Context, toID uuid.UUID) ([]*entities.Indication, error) {
	args := m.Called(ctx, toID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Indication), args.Error(1)
}

func (m *MockIndicationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ImageHost
type MockImageHost struct {
	mock.Mock
}

func (m *MockImageHost) Upload(ctx context.Context, r io.Reader, folder, filename, contentType string) (*entities.UploadedImage, error) {
	args := m.Called(ctx, r, folder, filename, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UploadedImage), args.Error(1)
}

func (m *MockImageHost) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, template, to string, data map[string]string) error {
	args := m.Called(ctx, template, to, data)
	return args.Error(0)
}

// Mock ResetCodeStore
type MockResetCodeStore struct {
	mock.Mock
}

func (m *MockResetCodeStore) Save(ctx context.Context, email, digest string, ttl time.Duration) error {
	args := m.Called(ctx, email, digest, ttl)
	return args.Error(0)
}

func (m *MockResetCodeStore) Digest(ctx context.Context, email string) (string, bool, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockResetCodeStore) Failures(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResetCodeStore) RegisterFailure(ctx context.Context, email string, ttl time.Duration) (int64, error) {
	args := m.Called(ctx, email, ttl)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResetCodeStore) Consume(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
