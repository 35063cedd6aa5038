package models

import (
	"time"

	"github.com/google/uuid"
)

type PortfolioImage struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

type PortfolioItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProfessionalID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title           string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	Images          PortfolioImages `gorm:"type:text"`
	ProjectType     string          `gorm:"type:varchar(100)"`
	ProjectArea     string          `gorm:"type:varchar(100)"`
	ProjectDuration string          `gorm:"type:varchar(100)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Indication struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	FromProfessionalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_indication_pair"`
	ToProfessionalID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_indication_pair;index"`
	Message            string    `gorm:"type:varchar(500)"`
	CreatedAt          time.Time
}
