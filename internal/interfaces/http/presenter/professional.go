// Package presenter shapes domain records into response views. Contact
// fields of professionals and companies are only rendered for
// authenticated requesters.
package presenter

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"obra-connect.backend/internal/domain/entities"
)

// ContactInfo holds the gated contact fields
type ContactInfo struct {
	Email    null.String `json:"email"`
	Phone    null.String `json:"phone"`
	Whatsapp null.String `json:"whatsapp"`
	Address  null.String `json:"address"`
	MapLink  null.String `json:"mapLink"`
}

func (ci ContactInfo) hasAny() bool {
	for _, f := range []null.String{ci.Email, ci.Phone, ci.Whatsapp, ci.Address, ci.MapLink} {
		if f.Valid && f.String != "" {
			return true
		}
	}
	return false
}

// ProfessionalSummary is the part of a professional anyone may see
type ProfessionalSummary struct {
	ID            uuid.UUID                `json:"id"`
	UserID        *uuid.UUID               `json:"userId,omitempty"`
	Name          string                   `json:"name"`
	PhotoURL      null.String              `json:"photoUrl"`
	CategoryID    string                   `json:"category_id"`
	Category      *entities.Category       `json:"category,omitempty"`
	Subcategories []entities.Subcategory   `json:"subcategories"`
	City          string                   `json:"city"`
	State         string                   `json:"state"`
	Description   string                   `json:"description"`
	Experience    string                   `json:"experience"`
	Education     string                   `json:"education"`
	Portfolio     []entities.PortfolioItem `json:"portfolio,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
}

// ProfessionalView is either a PublicProfessionalView or a FullProfessionalView
type ProfessionalView interface {
	professionalView()
}

// PublicProfessionalView is served to anonymous requesters
type PublicProfessionalView struct {
	ProfessionalSummary
	ContactRestricted bool `json:"contactRestricted,omitempty"`
}

// FullProfessionalView is served to authenticated requesters
type FullProfessionalView struct {
	ProfessionalSummary
	ContactInfo
}

func (PublicProfessionalView) professionalView() {}
func (FullProfessionalView) professionalView()   {}

// Professional maps p to the view matching the requester's authentication
func Professional(p *entities.Professional, authenticated bool) ProfessionalView {
	summary := professionalSummary(p)
	contact := professionalContact(p)
	if authenticated {
		return FullProfessionalView{ProfessionalSummary: summary, ContactInfo: contact}
	}
	return PublicProfessionalView{ProfessionalSummary: summary, ContactRestricted: contact.hasAny()}
}

// Professionals maps every element with Professional
func Professionals(list []*entities.Professional, authenticated bool) []ProfessionalView {
	out := make([]ProfessionalView, 0, len(list))
	for _, p := range list {
		out = append(out, Professional(p, authenticated))
	}
	return out
}

func professionalSummary(p *entities.Professional) ProfessionalSummary {
	s := ProfessionalSummary{
		ID:            p.ID,
		Name:          p.Name,
		PhotoURL:      p.PhotoURL,
		CategoryID:    p.CategoryID,
		Category:      p.Category,
		Subcategories: p.Subcategories,
		City:          p.City,
		State:         p.State,
		Description:   p.Description,
		Experience:    p.Experience,
		Education:     p.Education,
		Portfolio:     p.Portfolio,
		CreatedAt:     p.CreatedAt,
	}
	if p.UserID.Valid {
		id := p.UserID.UUID
		s.UserID = &id
	}
	if s.Subcategories == nil {
		s.Subcategories = []entities.Subcategory{}
	}
	return s
}

func professionalContact(p *entities.Professional) ContactInfo {
	return ContactInfo{
		Email:    p.Email,
		Phone:    p.Phone,
		Whatsapp: p.Whatsapp,
		Address:  p.Address,
		MapLink:  p.MapLink,
	}
}
