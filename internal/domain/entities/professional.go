package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Professional is the profile extension of a professional account
type Professional struct {
	ID            uuid.UUID
	UserID        uuid.NullUUID
	Name          string
	PhotoURL      null.String
	CategoryID    string
	Category      *Category
	Subcategories []Subcategory
	City          string
	State         string
	Description   string
	Experience    string
	Education     string
	CPF           string

	Email    null.String
	Phone    null.String
	Whatsapp null.String
	Address  null.String
	MapLink  null.String

	Active    bool
	Portfolio []PortfolioItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfessionalFilter narrows the professionals listing
type ProfessionalFilter struct {
	CategoryID    string
	SubcategoryID string
	City          string
	State         string
	Search        string
	Page          int
	Limit         int
}

// UpdateProfessionalInput is a partial update; nil fields are untouched
type UpdateProfessionalInput struct {
	CategoryID     *string   `json:"category_id"`
	SubcategoryIDs *[]string `json:"subcategory_ids"`
	City           *string   `json:"city" binding:"omitempty,min=2"`
	State          *string   `json:"state" binding:"omitempty,len=2"`
	Description    *string   `json:"description"`
	Experience     *string   `json:"experience"`
	Education      *string   `json:"education"`
	PhotoURL       *string   `json:"photoUrl" binding:"omitempty,url"`
	Phone          *string   `json:"phone"`
	Whatsapp       *string   `json:"whatsapp"`
	Address        *string   `json:"address"`
	MapLink        *string   `json:"mapLink" binding:"omitempty,url"`
}
