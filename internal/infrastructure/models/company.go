package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type Company struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey"`
	UserID        uuid.NullUUID `gorm:"type:uuid;uniqueIndex"`
	CompanyName   string        `gorm:"type:varchar(200);not null"`
	CNPJ          null.String   `gorm:"column:cnpj;type:varchar(14);uniqueIndex"`
	BusinessAreas StringList    `gorm:"type:text"`
	Description   string        `gorm:"type:text"`
	City          string        `gorm:"type:varchar(100);index"`
	State         string        `gorm:"type:varchar(2);index"`
	PhotoURL      null.String   `gorm:"type:text"`
	ContactEmail  null.String   `gorm:"type:varchar(255)"`
	Phone         null.String   `gorm:"type:varchar(30)"`
	Whatsapp      null.String   `gorm:"type:varchar(30)"`
	Address       null.String   `gorm:"type:text"`
	MapLink       null.String   `gorm:"type:text"`
	Active        bool          `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
