package models

import "time"

type Category struct {
	ID            string        `gorm:"type:varchar(50);primaryKey"`
	Name          string        `gorm:"type:varchar(120);not null"`
	Description   string        `gorm:"type:text"`
	Icon          string        `gorm:"type:varchar(120)"`
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Subcategory struct {
	ID         string `gorm:"type:varchar(50);primaryKey"`
	CategoryID string `gorm:"type:varchar(50);not null;index"`
	Name       string `gorm:"type:varchar(120);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type City struct {
	ID        string `gorm:"type:varchar(50);primaryKey"`
	Name      string `gorm:"type:varchar(120);not null"`
	State     string `gorm:"type:varchar(2);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (City) TableName() string {
	return "cities"
}
