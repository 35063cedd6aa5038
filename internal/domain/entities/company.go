package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Company is the profile extension of a company account
type Company struct {
	ID            uuid.UUID
	UserID        uuid.NullUUID
	CompanyName   string
	CNPJ          string
	BusinessAreas []string
	Description   string
	City          string
	State         string
	PhotoURL      null.String

	Email    null.String
	Phone    null.String
	Whatsapp null.String
	Address  null.String
	MapLink  null.String

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyFilter narrows the companies listing
type CompanyFilter struct {
	City   string
	State  string
	Search string
	Page   int
	Limit  int
}

// UpdateCompanyInput is a partial update; nil fields are untouched
type UpdateCompanyInput struct {
	CompanyName   *string   `json:"companyName" binding:"omitempty,min=2"`
	BusinessAreas *[]string `json:"businessAreas"`
	Description   *string   `json:"description"`
	City          *string   `json:"city"`
	State         *string   `json:"state" binding:"omitempty,len=2"`
	PhotoURL      *string   `json:"photoUrl" binding:"omitempty,url"`
	Phone         *string   `json:"phone"`
	Whatsapp      *string   `json:"whatsapp"`
	Address       *string   `json:"address"`
	MapLink       *string   `json:"mapLink" binding:"omitempty,url"`
}
