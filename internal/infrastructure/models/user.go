package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string      `gorm:"type:varchar(100);not null"`
	PasswordHash string      `gorm:"type:varchar(255);not null"`
	Role         string      `gorm:"type:varchar(20);not null;index"`
	Active       bool        `gorm:"not null"`
	PhotoURL     null.String `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
