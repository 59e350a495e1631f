package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osoroyal/churchhub/assignment"
	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

func TestCreateMemberValidation(t *testing.T) {
	setupTestDB(t)

	rec := doJSON(t, NewMemberHandler().Create, http.MethodPost, "/", map[string]any{
		"member_id": "TM-1", "full_name": "John Doe", "phone": "12",
		"membership_status": "Active",
	})
	requireStatus(t, rec, http.StatusBadRequest)
	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "phone")
}

func TestCreateMemberRejectsUnknownCell(t *testing.T) {
	setupTestDB(t)

	rec := doJSON(t, NewMemberHandler().Create, http.MethodPost, "/", map[string]any{
		"member_id": "TM-1", "full_name": "John Doe", "phone": "0244123456",
		"membership_status": "Active", "home_cell_name": "NoSuchCell",
	})
	requireStatus(t, rec, http.StatusBadRequest)
}

// Unassigned member gets assigned to Zion, then shows up in the cell roster
// and drops out of the unassigned list.
func TestAssignMoveAndUnassigned(t *testing.T) {
	setupTestDB(t)

	d := createDistrict(t, "Central")
	z := createZone(t, "A1", d.ID)
	createHomeCell(t, "Zion", z.ID, nil)

	rec := doJSON(t, NewMemberHandler().Create, http.MethodPost, "/", map[string]any{
		"member_id": "TM-1", "full_name": "John Doe", "phone": "0244123456",
		"membership_status": "Active",
	})
	requireStatus(t, rec, http.StatusCreated)
	var john models.Member
	decodeBody(t, rec, &john)
	require.NotEmpty(t, john.ID)

	// starts unassigned
	rec = doJSON(t, NewMemberHandler().Unassigned, http.MethodGet, "/", nil)
	requireStatus(t, rec, http.StatusOK)
	var unassigned []models.Member
	decodeBody(t, rec, &unassigned)
	require.Len(t, unassigned, 1)
	assert.Equal(t, "John Doe", unassigned[0].FullName)

	// assign to Zion
	rec = doJSON(t, NewMemberHandler().Assign, http.MethodPost, "/",
		map[string]any{"home_cell_name": "Zion"}, "id", john.ID)
	requireStatus(t, rec, http.StatusOK)

	var members []models.Member
	require.NoError(t, database.DB.Find(&members).Error)
	roster := assignment.MembersOf(members, "Zion")
	require.Len(t, roster, 1)
	assert.Equal(t, "John Doe", roster[0].FullName)
	assert.Empty(t, assignment.Unassigned(members))
}

func TestAssignToUnknownCellFails(t *testing.T) {
	setupTestDB(t)
	seedMember(t, "m1", "John Doe", "")

	rec := doJSON(t, NewMemberHandler().Assign, http.MethodPost, "/",
		map[string]any{"home_cell_name": "Nowhere"}, "id", "m1")
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestTransferWritesLog(t *testing.T) {
	setupTestDB(t)

	d := createDistrict(t, "Central")
	z := createZone(t, "A1", d.ID)
	createHomeCell(t, "Zion", z.ID, nil)
	createHomeCell(t, "Bethel", z.ID, nil)
	seedMember(t, "m1", "John Doe", "Zion")

	rec := doJSON(t, NewMemberHandler().Transfer, http.MethodPost, "/",
		map[string]any{"home_cell_name": "Bethel", "note": "moved house"}, "id", "m1")
	requireStatus(t, rec, http.StatusOK)

	var m models.Member
	require.NoError(t, database.DB.First(&m, "id = ?", "m1").Error)
	assert.Equal(t, "Bethel", m.HomeCellName)

	rec = doJSON(t, NewMemberHandler().Transfers, http.MethodGet, "/", nil, "id", "m1")
	requireStatus(t, rec, http.StatusOK)
	var logs []models.TransferLog
	decodeBody(t, rec, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, "Zion", logs[0].FromCell)
	assert.Equal(t, "Bethel", logs[0].ToCell)
	assert.Equal(t, "moved house", logs[0].Note)
}

func TestUnassignClearsReference(t *testing.T) {
	setupTestDB(t)

	d := createDistrict(t, "Central")
	z := createZone(t, "A1", d.ID)
	createHomeCell(t, "Zion", z.ID, nil)
	seedMember(t, "m1", "John Doe", "Zion")

	rec := doJSON(t, NewMemberHandler().Unassign, http.MethodPost, "/", nil, "id", "m1")
	requireStatus(t, rec, http.StatusOK)

	var m models.Member
	require.NoError(t, database.DB.First(&m, "id = ?", "m1").Error)
	assert.Equal(t, "", m.HomeCellName)
}

func TestImportEmptyBatch(t *testing.T) {
	setupTestDB(t)

	rec := doJSON(t, NewMemberHandler().Import, http.MethodPost, "/", []map[string]any{})
	requireStatus(t, rec, http.StatusBadRequest)
	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	assert.Contains(t, body["fields"], "members")
}

func TestImportAllOrNothing(t *testing.T) {
	setupTestDB(t)

	rec := doJSON(t, NewMemberHandler().Import, http.MethodPost, "/", []map[string]any{
		{"member_id": "TM-1", "full_name": "John Doe", "phone": "0244123456", "membership_status": "Active"},
		{"member_id": "", "full_name": "Broken Row", "phone": "0244123457", "membership_status": "Active"},
	})
	requireStatus(t, rec, http.StatusBadRequest)
	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "BULK_VALIDATION_ERROR", body["error"])

	var n int64
	require.NoError(t, database.DB.Model(&models.Member{}).Count(&n).Error)
	assert.Zero(t, n, "a bad row aborts the whole import")

	rec = doJSON(t, NewMemberHandler().Import, http.MethodPost, "/", []map[string]any{
		{"member_id": "TM-1", "full_name": "John Doe", "phone": "0244123456", "membership_status": "Active"},
		{"member_id": "TM-2", "full_name": "Mary Mensah", "phone": "0244123457", "membership_status": "Inactive"},
	})
	requireStatus(t, rec, http.StatusCreated)
	require.NoError(t, database.DB.Model(&models.Member{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}
