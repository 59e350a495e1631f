package routes

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/osoroyal/churchhub/database"
)

func setupRouter(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	e := echo.New()
	Register(e, "test-secret")
	return e
}

func TestTreeIsPublic(t *testing.T) {
	e := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/homecells/tree", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "tree must be readable without a token")
}

func TestAuthenticatedRoutesRejectAnonymous(t *testing.T) {
	e := setupRouter(t)

	for _, target := range []string{"/api/members", "/api/homecells/districts", "/api/welfare"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "GET %s without a token", target)
	}
}
