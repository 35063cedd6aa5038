package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"obra-connect.backend/internal/domain/entities"
	"obra-connect.backend/internal/interfaces/http/middleware"
)

func newTestRouter(user *entities.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if user != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.UserKey, user)
			c.Next()
		})
	}
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func testUser(role entities.UserRole) *entities.User {
	return &entities.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", Role: role, Active: true}
}

func testProfessional() *entities.Professional {
	return &entities.Professional{
		ID:         uuid.New(),
		UserID:     uuid.NullUUID{UUID: uuid.New(), Valid: true},
		Name:       "Carlos Pedreiro",
		CategoryID: "cat-1",
		Category:   &entities.Category{ID: "cat-1", Name: "Construção"},
		City:       "Curitiba",
		State:      "PR",
		Email:      null.StringFrom("carlos@example.com"),
		Phone:      null.StringFrom("41999990000"),
		Active:     true,
	}
}
