package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"obra-connect.backend/internal/domain/entities"
	"obra-connect.backend/internal/interfaces/http/response"
)

type taxonomyService interface {
	ListCategories(ctx context.Context) ([]*entities.Category, error)
	ListSubcategories(ctx context.Context, categoryID string) ([]*entities.Subcategory, error)
	ListCities(ctx context.Context, state string) ([]*entities.City, error)
}

// TaxonomyHandler serves categories, subcategories and cities
type TaxonomyHandler struct {
	taxonomyUsecase taxonomyService
}

func NewTaxonomyHandler(taxonomyUsecase taxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyUsecase: taxonomyUsecase}
}

// GET /api/v1/categories
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.taxonomyUsecase.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": categories})
}

// GET /api/v1/categories/:id/subcategories
func (h *TaxonomyHandler) ListSubcategories(c *gin.Context) {
	subs, err := h.taxonomyUsecase.ListSubcategories(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": subs})
}

// GET /api/v1/cities?state=
func (h *TaxonomyHandler) ListCities(c *gin.Context) {
	cities, err := h.taxonomyUsecase.ListCities(c.Request.Context(), c.Query("state"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": cities})
}
