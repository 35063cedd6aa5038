package entities

import (
	"time"

	"github.com/google/uuid"
)

// PortfolioImage references an image kept by the image host
type PortfolioImage struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// PortfolioItem is a past project shown on a professional profile
type PortfolioItem struct {
	ID              uuid.UUID        `json:"id"`
	ProfessionalID  uuid.UUID        `json:"professionalId"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Images          []PortfolioImage `json:"images"`
	ProjectType     string           `json:"projectType,omitempty"`
	ProjectArea     string           `json:"projectArea,omitempty"`
	ProjectDuration string           `json:"projectDuration,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// CreatePortfolioItemInput represents input for a new portfolio item
type CreatePortfolioItemInput struct {
	Title           string           `json:"title" binding:"required,min=2,max=200"`
	Description     string           `json:"description" binding:"max=5000"`
	Images          []PortfolioImage `json:"images" binding:"max=20,dive"`
	ProjectType     string           `json:"projectType"`
	ProjectArea     string           `json:"projectArea"`
	ProjectDuration string           `json:"projectDuration"`
}

// UpdatePortfolioItemInput is a partial update; nil fields are untouched
type UpdatePortfolioItemInput struct {
	Title           *string           `json:"title" binding:"omitempty,min=2,max=200"`
	Description     *string           `json:"description" binding:"omitempty,max=5000"`
	Images          *[]PortfolioImage `json:"images" binding:"omitempty,max=20"`
	ProjectType     *string           `json:"projectType"`
	ProjectArea     *string           `json:"projectArea"`
	ProjectDuration *string           `json:"projectDuration"`
}
