package entities

import (
	"time"

	"github.com/google/uuid"
)

// Indication is a peer referral from one professional to another
type Indication struct {
	ID                 uuid.UUID
	FromProfessionalID uuid.UUID
	ToProfessionalID   uuid.UUID
	Message            string
	From               *Professional
	CreatedAt          time.Time
}

// CreateIndicationInput represents the optional referral note
type CreateIndicationInput struct {
	Message string `json:"message" binding:"max=500"`
}
