package presenter

import (
	"time"

	"github.com/google/uuid"
	"obra-connect.backend/internal/domain/entities"
)

// IndicationView is a received referral with its referrer shaped by visibility
type IndicationView struct {
	ID        uuid.UUID        `json:"id"`
	Message   string           `json:"message,omitempty"`
	From      ProfessionalView `json:"from,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Indication maps one referral
func Indication(ind *entities.Indication, authenticated bool) IndicationView {
	v := IndicationView{ID: ind.ID, Message: ind.Message, CreatedAt: ind.CreatedAt}
	if ind.From != nil {
		v.From = Professional(ind.From, authenticated)
	}
	return v
}

// Indications maps every element with Indication
func Indications(list []*entities.Indication, authenticated bool) []IndicationView {
	out := make([]IndicationView, 0, len(list))
	for _, ind := range list {
		out = append(out, Indication(ind, authenticated))
	}
	return out
}

// ProfileView is the account owner's own view; extensions are always full
type ProfileView struct {
	User         *entities.User        `json:"user"`
	Professional *FullProfessionalView `json:"professional,omitempty"`
	Company      *FullCompanyView      `json:"company,omitempty"`
}

// Profile maps the authenticated user's profile
func Profile(p *entities.ProfileResponse) ProfileView {
	v := ProfileView{User: p.User}
	if p.Professional != nil {
		full := Professional(p.Professional, true).(FullProfessionalView)
		v.Professional = &full
	}
	if p.Company != nil {
		full := Company(p.Company, true).(FullCompanyView)
		v.Company = &full
	}
	return v
}
