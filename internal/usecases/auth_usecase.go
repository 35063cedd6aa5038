package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/domain/repositories"
	"obra-connect.backend/pkg/crypto"
	"obra-connect.backend/pkg/jwt"
	"obra-connect.backend/pkg/logger"
	"obra-connect.backend/pkg/utils"
)

// AuthUsecase handles registration, login and the caller's own profile
type AuthUsecase struct {
	userRepo         repositories.UserRepository
	professionalRepo repositories.ProfessionalRepository
	companyRepo      repositories.CompanyRepository
	taxonomyRepo     repositories.TaxonomyRepository
	uow              repositories.UnitOfWork
	jwtService       *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	professionalRepo repositories.ProfessionalRepository,
	companyRepo repositories.CompanyRepository,
	taxonomyRepo repositories.TaxonomyRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:         userRepo,
		professionalRepo: professionalRepo,
		companyRepo:      companyRepo,
		taxonomyRepo:     taxonomyRepo,
		uow:              uow,
		jwtService:       jwtService,
	}
}

// Register creates the account and its role extension in one transaction
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	email := normalizeEmail(input.Email)
	if input.Password != input.ConfirmPassword {
		return nil, domainerrors.FieldError("confirmPassword", "passwords do not match")
	}

	var (
		professional *entities.Professional
		company      *entities.Company
		err          error
	)
	switch input.UserType {
	case entities.UserRoleProfessional:
		professional, err = u.buildProfessional(ctx, input)
	case entities.UserRoleCompany:
		company, err = u.buildCompany(ctx, input)
	case entities.UserRoleClient:
	default:
		return nil, domainerrors.FieldError("userType", "must be one of professional, company, client")
	}
	if err != nil {
		return nil, err
	}

	_, err = u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.DuplicateEmail()
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         input.UserType,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	owner := uuid.NullUUID{UUID: user.ID, Valid: true}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				return domainerrors.DuplicateEmail()
			}
			return err
		}
		if professional != nil {
			professional.UserID = owner
			professional.Name = user.Name
			if err := u.professionalRepo.Create(txCtx, professional); err != nil {
				if errors.Is(err, domainerrors.ErrAlreadyExists) {
					return domainerrors.DuplicateRegistrationNumber()
				}
				return err
			}
		}
		if company != nil {
			company.UserID = owner
			if err := u.companyRepo.Create(txCtx, company); err != nil {
				if errors.Is(err, domainerrors.ErrAlreadyExists) {
					return domainerrors.DuplicateRegistrationNumber()
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "User registered", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	return u.issue(user)
}

func (u *AuthUsecase) buildProfessional(ctx context.Context, input *entities.RegisterInput) (*entities.Professional, error) {
	missing := missingFields(
		[2]string{"cpf", input.CPF},
		[2]string{"category_id", input.CategoryID},
		[2]string{"city", input.City},
		[2]string{"state", input.State},
		[2]string{"description", input.Description},
		[2]string{"experience", input.Experience},
		[2]string{"education", input.Education},
	)
	if len(missing) > 0 {
		return nil, requiredFieldsError(missing)
	}
	if !utils.IsValidCPF(input.CPF) {
		return nil, domainerrors.FieldError("cpf", "invalid CPF")
	}
	cpf := utils.OnlyDigits(input.CPF)

	subcategoryIDs, err := u.validateCategory(ctx, input.CategoryID, input.SubcategoryIDs)
	if err != nil {
		return nil, err
	}

	exists, err := u.professionalRepo.ExistsByCPF(ctx, cpf)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.DuplicateRegistrationNumber()
	}

	now := time.Now()
	p := &entities.Professional{
		ID:          utils.GenerateUUIDv7(),
		CategoryID:  strings.TrimSpace(input.CategoryID),
		City:        strings.TrimSpace(input.City),
		State:       strings.ToUpper(strings.TrimSpace(input.State)),
		Description: strings.TrimSpace(input.Description),
		Experience:  strings.TrimSpace(input.Experience),
		Education:   strings.TrimSpace(input.Education),
		CPF:         cpf,
		Phone:       optionalString(input.Phone),
		Whatsapp:    optionalString(input.Whatsapp),
		Address:     optionalString(input.Address),
		MapLink:     optionalString(input.MapLink),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, id := range subcategoryIDs {
		p.Subcategories = append(p.Subcategories, entities.Subcategory{ID: id, CategoryID: p.CategoryID})
	}
	return p, nil
}

func (u *AuthUsecase) buildCompany(ctx context.Context, input *entities.RegisterInput) (*entities.Company, error) {
	missing := missingFields(
		[2]string{"companyName", input.CompanyName},
		[2]string{"cnpj", input.CNPJ},
	)
	if len(missing) > 0 {
		return nil, requiredFieldsError(missing)
	}
	if !utils.IsValidCNPJ(input.CNPJ) {
		return nil, domainerrors.FieldError("cnpj", "invalid CNPJ")
	}
	cnpj := utils.OnlyDigits(input.CNPJ)

	exists, err := u.companyRepo.ExistsByCNPJ(ctx, cnpj)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.DuplicateRegistrationNumber()
	}

	now := time.Now()
	return &entities.Company{
		ID:            utils.GenerateUUIDv7(),
		CompanyName:   strings.TrimSpace(input.CompanyName),
		CNPJ:          cnpj,
		BusinessAreas: uniqueStrings(input.BusinessAreas),
		Description:   strings.TrimSpace(input.Description),
		City:          strings.TrimSpace(input.City),
		State:         strings.ToUpper(strings.TrimSpace(input.State)),
		Phone:         optionalString(input.Phone),
		Whatsapp:      optionalString(input.Whatsapp),
		Address:       optionalString(input.Address),
		MapLink:       optionalString(input.MapLink),
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// validateCategory checks the category exists and owns every subcategory
func (u *AuthUsecase) validateCategory(ctx context.Context, categoryID string, subcategoryIDs []string) ([]string, error) {
	return validateCategory(ctx, u.taxonomyRepo, categoryID, subcategoryIDs)
}

func validateCategory(ctx context.Context, repo repositories.TaxonomyRepository, categoryID string, subcategoryIDs []string) ([]string, error) {
	categoryID = strings.TrimSpace(categoryID)
	if _, err := repo.GetCategory(ctx, categoryID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.FieldError("category_id", "unknown category")
		}
		return nil, err
	}

	ids := uniqueStrings(subcategoryIDs)
	if len(ids) == 0 {
		return nil, nil
	}
	subs, err := repo.GetSubcategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(subs) != len(ids) {
		return nil, domainerrors.FieldError("subcategory_ids", "unknown subcategory")
	}
	for _, s := range subs {
		if s.CategoryID != categoryID {
			return nil, domainerrors.FieldError("subcategory_ids", "subcategory does not belong to category")
		}
	}
	return ids, nil
}

func requiredFieldsError(fields []string) *domainerrors.AppError {
	details := make(map[string]string, len(fields))
	for _, f := range fields {
		details[f] = "required"
	}
	return domainerrors.Validation("missing required fields: "+strings.Join(fields, ", "), details)
}

// Login checks credentials before account state, so a disabled account is
// only disclosed to a caller who knows its password.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	email := normalizeEmail(input.Email)

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			logger.Warn(ctx, "Login failed", zap.String("email", email), zap.String("reason", "unknown_email"))
			return nil, domainerrors.InvalidCredentials()
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		logger.Warn(ctx, "Login failed", zap.String("email", email), zap.String("reason", "wrong_password"))
		return nil, domainerrors.InvalidCredentials()
	}

	if !user.Active {
		logger.Warn(ctx, "Login on disabled account", zap.String("user_id", user.ID.String()))
		return nil, domainerrors.AccountDisabled()
	}

	return u.issue(user)
}

func (u *AuthUsecase) issue(user *entities.User) (*entities.AuthResponse, error) {
	token, err := u.jwtService.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		User:      user,
	}, nil
}

// GetProfile returns the user with the extension record it owns, if any
func (u *AuthUsecase) GetProfile(ctx context.Context, user *entities.User) (*entities.ProfileResponse, error) {
	out := &entities.ProfileResponse{User: user}

	switch user.Role {
	case entities.UserRoleProfessional:
		p, err := u.professionalRepo.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		out.Professional = p
	case entities.UserRoleCompany:
		c, err := u.companyRepo.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		out.Company = c
	}
	return out, nil
}

// UpdateProfile changes name, photo and optionally the password.
// Email, role, active flag and id cannot be changed here.
func (u *AuthUsecase) UpdateProfile(ctx context.Context, user *entities.User, input *entities.UpdateProfileInput) (*entities.User, error) {
	current, err := u.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}

	var newHash string
	if input.NewPassword != "" {
		if input.CurrentPassword == "" {
			return nil, domainerrors.FieldError("currentPassword", "required to change password")
		}
		if input.ConfirmPassword != input.NewPassword {
			return nil, domainerrors.FieldError("confirmPassword", "passwords do not match")
		}
		if !crypto.CheckPassword(input.CurrentPassword, current.PasswordHash) {
			logger.Warn(ctx, "Password change with wrong current password", zap.String("user_id", current.ID.String()))
			return nil, domainerrors.FieldError("currentPassword", "incorrect password")
		}
		newHash, err = crypto.HashPassword(input.NewPassword)
		if err != nil {
			return nil, err
		}
	}

	applyString(&current.Name, input.Name)
	if input.PhotoURL != nil {
		current.PhotoURL = optionalString(*input.PhotoURL)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if input.Name != nil || input.PhotoURL != nil {
			if err := u.userRepo.Update(txCtx, current); err != nil {
				return err
			}
		}
		if newHash != "" {
			return u.userRepo.UpdatePassword(txCtx, current.ID, newHash)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	current.PasswordHash = ""
	current.UpdatedAt = time.Now()
	return current, nil
}

// BootstrapAdmin creates an admin account unless the email is taken
func (u *AuthUsecase) BootstrapAdmin(ctx context.Context, name, email, password string) (*entities.User, bool, error) {
	email = normalizeEmail(email)
	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, false, err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, false, err
	}
	now := time.Now()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entities.UserRoleAdmin,
		Active:       true,
		PhotoURL:     null.String{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}
