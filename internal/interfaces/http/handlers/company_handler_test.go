package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/pkg/utils"
)

type companyServiceStub struct {
	company    *entities.Company
	lastFilter entities.CompanyFilter
}

func (s *companyServiceStub) List(_ context.Context, filter entities.CompanyFilter) ([]*entities.Company, utils.PaginationMeta, error) {
	s.lastFilter = filter
	return []*entities.Company{s.company}, utils.CalculateMeta(1, 1, 20), nil
}
func (s *companyServiceStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Company, error) {
	if id != s.company.ID {
		return nil, domainerrors.NotFound("company not found")
	}
	return s.company, nil
}
func (s *companyServiceStub) Update(_ context.Context, requester *entities.User, id uuid.UUID, input *entities.UpdateCompanyInput) (*entities.Company, error) {
	if requester.ID != s.company.UserID.UUID && !requester.IsAdmin() {
		return nil, domainerrors.Forbidden("not the owner of this company")
	}
	cp := *s.company
	if input.CompanyName != nil {
		cp.CompanyName = *input.CompanyName
	}
	return &cp, nil
}

func testCompany() *entities.Company {
	return &entities.Company{
		ID:          uuid.New(),
		UserID:      uuid.NullUUID{UUID: uuid.New(), Valid: true},
		CompanyName: "Construtora Alfa",
		CNPJ:        "11222333000181",
		City:        "Recife",
		State:       "PE",
		Email:       null.StringFrom("contato@alfa.com.br"),
		Whatsapp:    null.StringFrom("81988887777"),
		Active:      true,
	}
}

func TestCompanyHandler(t *testing.T) {
	svc := &companyServiceStub{company: testCompany()}
	h := NewCompanyHandler(svc)

	anon := newTestRouter(nil)
	anon.GET("/companies", h.List)
	anon.GET("/companies/:id", h.Get)

	w := doRequest(anon, http.MethodGet, "/companies?city=Recife&state=PE&search=alfa&page=1&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.CompanyFilter{City: "Recife", State: "PE", Search: "alfa", Page: 1, Limit: 10}, svc.lastFilter)
	item := decodeBody(t, w)["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, true, item["contactRestricted"])
	assert.NotContains(t, item, "whatsapp")

	w = doRequest(anon, http.MethodGet, "/companies/"+svc.company.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Construtora Alfa", decodeBody(t, w)["companyName"])
	assert.Equal(t, http.StatusNotFound, doRequest(anon, http.MethodGet, "/companies/xyz", "").Code)

	owner := testUser(entities.UserRoleCompany)
	owner.ID = svc.company.UserID.UUID
	r := newTestRouter(owner)
	r.GET("/companies/:id", h.Get)
	r.PUT("/companies/:id", h.Update)

	w = doRequest(r, http.MethodGet, "/companies/"+svc.company.ID.String(), "")
	assert.Equal(t, "81988887777", decodeBody(t, w)["whatsapp"])

	w = doRequest(r, http.MethodPut, "/companies/"+svc.company.ID.String(), `{"companyName":"Construtora Beta"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Construtora Beta", decodeBody(t, w)["companyName"])

	other := newTestRouter(testUser(entities.UserRoleCompany))
	other.PUT("/companies/:id", h.Update)
	assert.Equal(t, http.StatusForbidden, doRequest(other, http.MethodPut, "/companies/"+svc.company.ID.String(), `{"companyName":"X Y"}`).Code)
}
