package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type Professional struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey"`
	UserID       uuid.NullUUID `gorm:"type:uuid;uniqueIndex"`
	Name         string        `gorm:"type:varchar(100);not null"`
	PhotoURL     null.String   `gorm:"type:text"`
	CategoryID   string        `gorm:"type:varchar(50);not null;index"`
	City         string        `gorm:"type:varchar(100);not null;index"`
	State        string        `gorm:"type:varchar(2);not null;index"`
	Description  string        `gorm:"type:text;not null"`
	Experience   string        `gorm:"type:text;not null"`
	Education    string        `gorm:"type:text;not null"`
	CPF          null.String   `gorm:"column:cpf;type:varchar(11);uniqueIndex"`
	ContactEmail null.String   `gorm:"type:varchar(255)"`
	Phone        null.String   `gorm:"type:varchar(30)"`
	Whatsapp     null.String   `gorm:"type:varchar(30)"`
	Address      null.String   `gorm:"type:text"`
	MapLink      null.String   `gorm:"type:text"`
	Active       bool          `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// ProfessionalSubcategory is the explicit join row between professionals and subcategories
type ProfessionalSubcategory struct {
	ProfessionalID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubcategoryID  string    `gorm:"type:varchar(50);primaryKey"`
	CreatedAt      time.Time
}

func (ProfessionalSubcategory) TableName() string {
	return "professional_subcategories"
}
