package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHomeCellRosterRejectsUnknownFormat(t *testing.T) {
	setupTestDB(t)

	d := createDistrict(t, "Central")
	z := createZone(t, "A1", d.ID)
	cell := createHomeCell(t, "Zion", z.ID, nil)

	rec := doJSON(t, NewExportHandler().HomeCellRoster, http.MethodGet, "/?format=csv", nil, "id", itoa(cell.ID))
	requireStatus(t, rec, http.StatusBadRequest)
	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	assert.Contains(t, body["fields"], "format")

	// missing format is the same error
	rec = doJSON(t, NewExportHandler().HomeCellRoster, http.MethodGet, "/", nil, "id", itoa(cell.ID))
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestHomeCellRosterStreamsFiles(t *testing.T) {
	setupTestDB(t)

	d := createDistrict(t, "Central")
	z := createZone(t, "A1", d.ID)
	cell := createHomeCell(t, "Zion", z.ID, nil)
	seedMember(t, "m1", "John Doe", "Zion")

	rec := doJSON(t, NewExportHandler().HomeCellRoster, http.MethodGet, "/?format=excel", nil, "id", itoa(cell.ID))
	requireStatus(t, rec, http.StatusOK)
	assert.NotEmpty(t, rec.Body.Bytes())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), `filename="Zion-members.xlsx"`)

	rec = doJSON(t, NewExportHandler().HomeCellRoster, http.MethodGet, "/?format=pdf", nil, "id", itoa(cell.ID))
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "%PDF", string(rec.Body.Bytes()[:4]))
}

func TestHomeCellRosterMissingCell(t *testing.T) {
	setupTestDB(t)
	rec := doJSON(t, NewExportHandler().HomeCellRoster, http.MethodGet, "/?format=pdf", nil, "id", "999")
	requireStatus(t, rec, http.StatusNotFound)
}
