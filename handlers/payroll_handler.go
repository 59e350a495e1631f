package handlers

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

var payReMonth = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])$`)

const (
	PayrollPending  = "pending"
	PayrollApproved = "approved"
	PayrollRejected = "rejected"
)

type PayrollHandler struct{}

func NewPayrollHandler() *PayrollHandler { return &PayrollHandler{} }

// GET /api/payroll/runs?status=
func (h *PayrollHandler) List(c echo.Context) error {
	status := trimmed(c, "status")
	var runs []models.PayrollRun
	tx := database.DB.Model(&models.PayrollRun{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if err := tx.Order("month DESC").Find(&runs).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, runs)
}

// GET /api/payroll/runs/:id
func (h *PayrollHandler) Get(c echo.Context) error {
	var run models.PayrollRun
	if err := database.DB.Preload("Items").First(&run, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, run)
}

type generateRunReq struct {
	Month string `json:"month"` // YYYY-MM
}

// POST /api/payroll/runs
// Generates a pending run over active staff; one run per month.
func (h *PayrollHandler) Generate(c echo.Context) error {
	var req generateRunReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	req.Month = strings.TrimSpace(req.Month)
	if !payReMonth.MatchString(req.Month) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"month": "month must be YYYY-MM"},
		})
	}

	var dup models.PayrollRun
	if err := database.DB.Where("month = ?", req.Month).First(&dup).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "RUN_EXISTS"})
	}

	var staff []models.Staff
	if err := database.DB.Where("employment_status = ?", "active").Order("id ASC").Find(&staff).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if len(staff) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "NO_ACTIVE_STAFF"})
	}

	run := models.PayrollRun{Month: req.Month, Status: PayrollPending}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return err
		}
		var total int64
		for _, s := range staff {
			item := models.PayrollItem{
				RunID:     run.ID,
				StaffID:   s.ID,
				StaffName: s.FullName,
				Gross:     s.Salary,
				Net:       s.Salary, // allowances/deductions adjusted before approval
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			total += item.Net
		}
		return tx.Model(&run).Update("total_net", total).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, run)
}

type itemAdjustReq struct {
	Allowances int64 `json:"allowances"`
	Deductions int64 `json:"deductions"`
}

// PATCH /api/payroll/items/:id, only while the run is pending
func (h *PayrollHandler) AdjustItem(c echo.Context) error {
	var item models.PayrollItem
	if err := database.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var run models.PayrollRun
	if err := database.DB.First(&run, "id = ?", item.RunID).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if run.Status != PayrollPending {
		return c.JSON(http.StatusConflict, map[string]string{"error": "RUN_NOT_PENDING"})
	}

	var req itemAdjustReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if req.Allowances < 0 || req.Deductions < 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"amounts": "allowances/deductions cannot be negative"},
		})
	}

	item.Allowances = req.Allowances
	item.Deductions = req.Deductions
	item.Net = item.Gross + item.Allowances - item.Deductions

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		var total int64
		if err := tx.Model(&models.PayrollItem{}).Where("run_id = ?", run.ID).
			Select("COALESCE(SUM(net), 0)").Scan(&total).Error; err != nil {
			return err
		}
		return tx.Model(&run).Update("total_net", total).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, item)
}

type payrollDecisionReq struct {
	RejectReason string `json:"reject_reason"`
}

// POST /api/payroll/runs/:id/approve
func (h *PayrollHandler) Approve(c echo.Context) error {
	return h.decide(c, PayrollApproved, payrollDecisionReq{})
}

// POST /api/payroll/runs/:id/reject
func (h *PayrollHandler) Reject(c echo.Context) error {
	var body payrollDecisionReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	return h.decide(c, PayrollRejected, body)
}

func (h *PayrollHandler) decide(c echo.Context, status string, body payrollDecisionReq) error {
	var run models.PayrollRun
	if err := database.DB.First(&run, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	// only pending runs transition; re-approving is a conflict, not a no-op
	if run.Status != PayrollPending {
		return c.JSON(http.StatusConflict, map[string]string{"error": "RUN_NOT_PENDING"})
	}
	if status == PayrollRejected && strings.TrimSpace(body.RejectReason) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "REJECT_REASON_REQUIRED"})
	}

	now := time.Now()
	updates := map[string]any{
		"status":     status,
		"decided_at": &now,
	}
	if uid, ok := getUserID(c); ok && uid > 0 {
		updates["decided_by"] = uid
	}
	if status == PayrollRejected {
		updates["reject_reason"] = strings.TrimSpace(body.RejectReason)
	} else {
		updates["reject_reason"] = ""
	}

	if err := database.DB.Model(&models.PayrollRun{}).Where("id = ?", run.ID).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
