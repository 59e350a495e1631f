package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

func createWelfare(t *testing.T, memberID string) models.WelfareRequest {
	t.Helper()
	rec := doJSON(t, NewWelfareHandler().Create, http.MethodPost, "/", map[string]any{
		"member_id": memberID, "type": "medical", "reason": "hospital bill",
		"amount": 50000, "date_from": "2026-09-01", "date_to": "2026-09-05",
	})
	requireStatus(t, rec, http.StatusCreated)
	var row models.WelfareRequest
	decodeBody(t, rec, &row)
	return row
}

func TestWelfareCreateAndPendingCount(t *testing.T) {
	setupTestDB(t)
	seedMember(t, "m1", "John Doe", "")

	row := createWelfare(t, "m1")
	assert.Equal(t, WelfarePending, row.Status)

	rec := doJSON(t, NewWelfareHandler().PendingCount, http.MethodGet, "/", nil)
	requireStatus(t, rec, http.StatusOK)
	var body map[string]any
	decodeBody(t, rec, &body)
	assert.EqualValues(t, 1, body["count"])
}

func TestWelfareRequiresExistingMember(t *testing.T) {
	setupTestDB(t)

	rec := doJSON(t, NewWelfareHandler().Create, http.MethodPost, "/", map[string]any{
		"member_id": "ghost", "type": "medical",
		"date_from": "2026-09-01", "date_to": "2026-09-05",
	})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestWelfareApprove(t *testing.T) {
	setupTestDB(t)
	seedMember(t, "m1", "John Doe", "")
	row := createWelfare(t, "m1")

	rec := doJSON(t, NewWelfareHandler().Approve, http.MethodPost, "/", nil, "id", itoa(row.ID))
	requireStatus(t, rec, http.StatusOK)

	var got models.WelfareRequest
	require.NoError(t, database.DB.First(&got, "id = ?", row.ID).Error)
	assert.Equal(t, WelfareApproved, got.Status)
	assert.NotNil(t, got.DecidedAt)

	// approving twice conflicts, the decision is final
	rec = doJSON(t, NewWelfareHandler().Approve, http.MethodPost, "/", nil, "id", itoa(row.ID))
	requireStatus(t, rec, http.StatusConflict)
}

func TestWelfareRejectNeedsReason(t *testing.T) {
	setupTestDB(t)
	seedMember(t, "m1", "John Doe", "")
	row := createWelfare(t, "m1")

	rec := doJSON(t, NewWelfareHandler().Reject, http.MethodPost, "/",
		map[string]any{"rejectReason": "  "}, "id", itoa(row.ID))
	requireStatus(t, rec, http.StatusBadRequest)

	rec = doJSON(t, NewWelfareHandler().Reject, http.MethodPost, "/",
		map[string]any{"rejectReason": "insufficient documentation"}, "id", itoa(row.ID))
	requireStatus(t, rec, http.StatusOK)

	var got models.WelfareRequest
	require.NoError(t, database.DB.First(&got, "id = ?", row.ID).Error)
	assert.Equal(t, WelfareRejected, got.Status)
	assert.Equal(t, "insufficient documentation", got.RejectReason)
}

func TestWelfareListFilters(t *testing.T) {
	setupTestDB(t)
	seedMember(t, "m1", "John Doe", "")
	seedMember(t, "m2", "Mary Mensah", "")
	a := createWelfare(t, "m1")
	createWelfare(t, "m2")

	rec := doJSON(t, NewWelfareHandler().Approve, http.MethodPost, "/", nil, "id", itoa(a.ID))
	requireStatus(t, rec, http.StatusOK)

	rec = doJSON(t, NewWelfareHandler().List, http.MethodGet, "/?status=pending", nil)
	requireStatus(t, rec, http.StatusOK)
	var resp struct {
		Data  []models.WelfareRequest `json:"data"`
		Page  int                     `json:"page"`
		Size  int                     `json:"size"`
		Total int64                   `json:"total"`
	}
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "m2", resp.Data[0].MemberID)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 1, resp.Page)
}
