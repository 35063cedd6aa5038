package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin        UserRole = "admin"
	UserRoleProfessional UserRole = "professional"
	UserRoleCompany      UserRole = "company"
	UserRoleClient       UserRole = "client"
)

// Valid reports whether r is one of the known roles
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleProfessional, UserRoleCompany, UserRoleClient:
		return true
	}
	return false
}

// User represents a user entity
type User struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	Active       bool        `json:"active"`
	PhotoURL     null.String `json:"photoUrl"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	DeletedAt    *time.Time  `json:"-"`
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

// RegisterInput represents input for self registration.
// Keys follow the web client, which mixes snake and camel case.
type RegisterInput struct {
	Name            string   `json:"name" binding:"required,min=2,max=100"`
	Email           string   `json:"email" binding:"required,email"`
	Password        string   `json:"password" binding:"required,min=6"`
	ConfirmPassword string   `json:"confirmPassword" binding:"required"`
	UserType        UserRole `json:"userType" binding:"required,oneof=professional company client"`

	CPF            string   `json:"cpf"`
	CategoryID     string   `json:"category_id"`
	SubcategoryIDs []string `json:"subcategory_ids"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	Description    string   `json:"description"`
	Experience     string   `json:"experience"`
	Education      string   `json:"education"`

	CompanyName   string   `json:"companyName"`
	CNPJ          string   `json:"cnpj"`
	BusinessAreas []string `json:"businessAreas"`

	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp"`
	Address  string `json:"address"`
	MapLink  string `json:"mapLink"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// UpdateProfileInput carries the mutable account fields.
// Identity and role are not part of it.
type UpdateProfileInput struct {
	Name            *string `json:"name" binding:"omitempty,min=2,max=100"`
	PhotoURL        *string `json:"photoUrl" binding:"omitempty,url"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword" binding:"omitempty,min=6"`
	ConfirmPassword string  `json:"confirmPassword"`
}

// ForgotPasswordInput starts a password reset
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput completes a password reset with the mailed code
type ResetPasswordInput struct {
	Email           string `json:"email" binding:"required,email"`
	Code            string `json:"code" binding:"required,len=6,numeric"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ProfileResponse is the authenticated user's own view
type ProfileResponse struct {
	User         *User         `json:"user"`
	Professional *Professional `json:"-"`
	Company      *Company      `json:"-"`
}
