package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/osoroyal/churchhub/database"
)

// setupTestDB points the package-level database.DB at a throwaway sqlite file
// and migrates the full schema, the same way Connect does against postgres.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

// doJSON runs one handler against a synthetic request. pathParams alternate
// name, value.
func doJSON(t *testing.T, h echo.HandlerFunc, method, target string, body any, pathParams ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.Zero(t, len(pathParams)%2, "pathParams must be name/value pairs")
	var names, values []string
	for i := 0; i < len(pathParams); i += 2 {
		names = append(names, pathParams[i])
		values = append(values, pathParams[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	require.NoError(t, h(c))
	return rec
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "response body: %s", rec.Body.String())
}
