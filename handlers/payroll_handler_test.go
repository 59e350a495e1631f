package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

func seedStaff(t *testing.T, code, name string, salary int64, status string) models.Staff {
	t.Helper()
	s := models.Staff{
		StaffCode: code, FullName: name, Title: "Pastor", Phone: "0244000000",
		Salary: salary, EmploymentStatus: status,
	}
	require.NoError(t, database.DB.Create(&s).Error)
	return s
}

func generateRun(t *testing.T, month string) models.PayrollRun {
	t.Helper()
	rec := doJSON(t, NewPayrollHandler().Generate, http.MethodPost, "/", map[string]any{"month": month})
	requireStatus(t, rec, http.StatusCreated)
	var run models.PayrollRun
	decodeBody(t, rec, &run)
	return run
}

func TestPayrollGenerateCoversActiveStaffOnly(t *testing.T) {
	setupTestDB(t)
	seedStaff(t, "ST-1", "Pastor Kwame", 300000, "active")
	seedStaff(t, "ST-2", "Deacon Yaw", 150000, "active")
	seedStaff(t, "ST-3", "Former Clerk", 100000, "left")

	run := generateRun(t, "2026-08")
	assert.Equal(t, PayrollPending, run.Status)

	rec := doJSON(t, NewPayrollHandler().Get, http.MethodGet, "/", nil, "id", itoa(run.ID))
	requireStatus(t, rec, http.StatusOK)
	var got models.PayrollRun
	decodeBody(t, rec, &got)
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(450000), got.TotalNet)
}

func TestPayrollGenerateRejectsBadMonthAndDuplicates(t *testing.T) {
	setupTestDB(t)
	seedStaff(t, "ST-1", "Pastor Kwame", 300000, "active")

	rec := doJSON(t, NewPayrollHandler().Generate, http.MethodPost, "/", map[string]any{"month": "2026-13"})
	requireStatus(t, rec, http.StatusBadRequest)

	generateRun(t, "2026-08")
	rec = doJSON(t, NewPayrollHandler().Generate, http.MethodPost, "/", map[string]any{"month": "2026-08"})
	requireStatus(t, rec, http.StatusConflict)
}

func TestPayrollGenerateNeedsStaff(t *testing.T) {
	setupTestDB(t)
	rec := doJSON(t, NewPayrollHandler().Generate, http.MethodPost, "/", map[string]any{"month": "2026-08"})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestPayrollAdjustItemRecomputesNet(t *testing.T) {
	setupTestDB(t)
	seedStaff(t, "ST-1", "Pastor Kwame", 300000, "active")
	run := generateRun(t, "2026-08")

	var item models.PayrollItem
	require.NoError(t, database.DB.First(&item, "run_id = ?", run.ID).Error)

	rec := doJSON(t, NewPayrollHandler().AdjustItem, http.MethodPatch, "/",
		map[string]any{"allowances": 50000, "deductions": 20000}, "id", itoa(item.ID))
	requireStatus(t, rec, http.StatusOK)
	var got models.PayrollItem
	decodeBody(t, rec, &got)
	assert.Equal(t, int64(330000), got.Net)

	var updated models.PayrollRun
	require.NoError(t, database.DB.First(&updated, "id = ?", run.ID).Error)
	assert.Equal(t, int64(330000), updated.TotalNet)
}

func TestPayrollApprovalWorkflow(t *testing.T) {
	setupTestDB(t)
	seedStaff(t, "ST-1", "Pastor Kwame", 300000, "active")
	run := generateRun(t, "2026-08")

	// reject without a reason fails
	rec := doJSON(t, NewPayrollHandler().Reject, http.MethodPost, "/",
		map[string]any{}, "id", itoa(run.ID))
	requireStatus(t, rec, http.StatusBadRequest)

	rec = doJSON(t, NewPayrollHandler().Approve, http.MethodPost, "/", nil, "id", itoa(run.ID))
	requireStatus(t, rec, http.StatusOK)

	var got models.PayrollRun
	require.NoError(t, database.DB.First(&got, "id = ?", run.ID).Error)
	assert.Equal(t, PayrollApproved, got.Status)
	assert.NotNil(t, got.DecidedAt)

	// approved runs are frozen: no further decisions or adjustments
	rec = doJSON(t, NewPayrollHandler().Approve, http.MethodPost, "/", nil, "id", itoa(run.ID))
	requireStatus(t, rec, http.StatusConflict)

	var item models.PayrollItem
	require.NoError(t, database.DB.First(&item, "run_id = ?", run.ID).Error)
	rec = doJSON(t, NewPayrollHandler().AdjustItem, http.MethodPatch, "/",
		map[string]any{"allowances": 1}, "id", itoa(item.ID))
	requireStatus(t, rec, http.StatusConflict)
}
