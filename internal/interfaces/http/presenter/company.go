package presenter

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"obra-connect.backend/internal/domain/entities"
)

// CompanySummary is the part of a company anyone may see
type CompanySummary struct {
	ID            uuid.UUID   `json:"id"`
	UserID        *uuid.UUID  `json:"userId,omitempty"`
	CompanyName   string      `json:"companyName"`
	CNPJ          string      `json:"cnpj,omitempty"`
	BusinessAreas []string    `json:"businessAreas"`
	Description   string      `json:"description"`
	City          string      `json:"city"`
	State         string      `json:"state"`
	PhotoURL      null.String `json:"photoUrl"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// CompanyView is either a PublicCompanyView or a FullCompanyView
type CompanyView interface {
	companyView()
}

// PublicCompanyView is served to anonymous requesters
type PublicCompanyView struct {
	CompanySummary
	ContactRestricted bool `json:"contactRestricted,omitempty"`
}

// FullCompanyView is served to authenticated requesters
type FullCompanyView struct {
	CompanySummary
	ContactInfo
}

func (PublicCompanyView) companyView() {}
func (FullCompanyView) companyView()   {}

// Company maps c to the view matching the requester's authentication
func Company(c *entities.Company, authenticated bool) CompanyView {
	summary := CompanySummary{
		ID:            c.ID,
		CompanyName:   c.CompanyName,
		CNPJ:          c.CNPJ,
		BusinessAreas: c.BusinessAreas,
		Description:   c.Description,
		City:          c.City,
		State:         c.State,
		PhotoURL:      c.PhotoURL,
		CreatedAt:     c.CreatedAt,
	}
	if c.UserID.Valid {
		id := c.UserID.UUID
		summary.UserID = &id
	}
	if summary.BusinessAreas == nil {
		summary.BusinessAreas = []string{}
	}
	contact := ContactInfo{
		Email:    c.Email,
		Phone:    c.Phone,
		Whatsapp: c.Whatsapp,
		Address:  c.Address,
		MapLink:  c.MapLink,
	}
	if authenticated {
		return FullCompanyView{CompanySummary: summary, ContactInfo: contact}
	}
	return PublicCompanyView{CompanySummary: summary, ContactRestricted: contact.hasAny()}
}

// Companies maps every element with Company
func Companies(list []*entities.Company, authenticated bool) []CompanyView {
	out := make([]CompanyView, 0, len(list))
	for _, c := range list {
		out = append(out, Company(c, authenticated))
	}
	return out
}
