package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

const (
	WelfarePending  = "pending"
	WelfareApproved = "approved"
	WelfareRejected = "rejected"
)

var WelfareTypes = map[string]bool{
	"medical": true, "bereavement": true, "financial": true, "other": true,
}

type WelfareHandler struct{}

func NewWelfareHandler() *WelfareHandler { return &WelfareHandler{} }

type welfarePayload struct {
	MemberID string `json:"member_id"`
	Type     string `json:"type"`
	Reason   string `json:"reason"`
	Amount   int64  `json:"amount"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

func (p *welfarePayload) normalize() {
	trim := func(s string) string { return strings.TrimSpace(s) }
	p.MemberID = trim(p.MemberID)
	p.Type = trim(strings.ToLower(p.Type))
	p.Reason = trim(p.Reason)
	p.DateFrom = trim(p.DateFrom)
	p.DateTo = trim(p.DateTo)
}

func validateWelfare(p *welfarePayload) map[string]string {
	errs := map[string]string{}
	if p.MemberID == "" {
		errs["member_id"] = "member_id is required"
	} else {
		var m models.Member
		if err := database.DB.First(&m, "id = ?", p.MemberID).Error; err != nil {
			errs["member_id"] = "member does not exist"
		}
	}
	if !WelfareTypes[p.Type] {
		errs["type"] = "choose a request type"
	}
	if p.Amount < 0 {
		errs["amount"] = "amount cannot be negative"
	}
	for field, v := range map[string]string{"date_from": p.DateFrom, "date_to": p.DateTo} {
		if v == "" {
			errs[field] = field + " is required"
		} else if _, err := time.Parse("2006-01-02", v); err != nil {
			errs[field] = field + " must be YYYY-MM-DD"
		}
	}
	if errs["date_from"] == "" && errs["date_to"] == "" && p.DateTo < p.DateFrom {
		errs["date_to"] = "date_to cannot be before date_from"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /api/welfare?status=&type=&memberId=&from=&to=&q=&page=&size=
func (h *WelfareHandler) List(c echo.Context) error {
	status := trimmed(c, "status")
	typ := trimmed(c, "type")
	memberID := trimmed(c, "memberId")
	from := trimmed(c, "from")
	to := trimmed(c, "to")
	q := trimmed(c, "q")
	page, size := pageSize(c)

	tx := database.DB.Model(&models.WelfareRequest{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if typ != "" {
		tx = tx.Where("type = ?", typ)
	}
	if memberID != "" {
		tx = tx.Where("member_id = ?", memberID)
	}
	if from != "" && to != "" {
		// range overlap: (DateFrom <= to) AND (DateTo >= from)
		tx = tx.Where("date_from <= ? AND date_to >= ?", to, from)
	}
	if q != "" {
		tx = tx.Where("reason ILIKE ?", "%"+q+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var rows []models.WelfareRequest
	if err := tx.Order("submitted_at DESC, id DESC").Limit(size).Offset((page - 1) * size).Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": rows, "page": page, "size": size, "total": total,
	})
}

// POST /api/welfare
func (h *WelfareHandler) Create(c echo.Context) error {
	var p welfarePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateWelfare(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	row := models.WelfareRequest{
		MemberID: p.MemberID,
		Type:     p.Type,
		Reason:   p.Reason,
		Amount:   p.Amount,
		DateFrom: p.DateFrom,
		DateTo:   p.DateTo,
		Status:   WelfarePending,
	}
	if err := database.DB.Create(&row).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, row)
}

// GET /api/welfare/pending-count
func (h *WelfareHandler) PendingCount(c echo.Context) error {
	var n int64
	if err := database.DB.Model(&models.WelfareRequest{}).
		Where("status = ?", WelfarePending).Count(&n).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"count": n})
}

type welfareDecisionReq struct {
	Status       string `json:"status"`
	RejectReason string `json:"rejectReason"`
}

// POST /api/welfare/:id/approve
func (h *WelfareHandler) Approve(c echo.Context) error {
	return h.updateStatus(c, c.Param("id"), welfareDecisionReq{Status: WelfareApproved})
}

// POST /api/welfare/:id/reject
func (h *WelfareHandler) Reject(c echo.Context) error {
	var body welfareDecisionReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	body.Status = WelfareRejected
	return h.updateStatus(c, c.Param("id"), body)
}

func (h *WelfareHandler) updateStatus(c echo.Context, id string, body welfareDecisionReq) error {
	var row models.WelfareRequest
	if err := database.DB.First(&row, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if row.Status != WelfarePending {
		return c.JSON(http.StatusConflict, map[string]any{"error": "ALREADY_DECIDED"})
	}
	if body.Status == WelfareRejected && strings.TrimSpace(body.RejectReason) == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "REJECT_REASON_REQUIRED"})
	}

	now := time.Now()
	updates := map[string]any{
		"status":     body.Status,
		"decided_at": &now,
	}
	if uid, ok := getUserID(c); ok && uid > 0 {
		updates["decided_by"] = uid
	}
	if body.Status == WelfareRejected {
		updates["reject_reason"] = strings.TrimSpace(body.RejectReason)
	} else {
		updates["reject_reason"] = ""
	}

	if err := database.DB.Model(&models.WelfareRequest{}).Where("id = ?", row.ID).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
