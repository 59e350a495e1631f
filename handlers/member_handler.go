package handlers

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/osoroyal/churchhub/assignment"
	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

type MemberHandler struct{}

func NewMemberHandler() *MemberHandler { return &MemberHandler{} }

// ===== Validation rules (mirror the AddMemberForm fields) =====
var (
	memReCode  = regexp.MustCompile(`^[A-Za-z0-9\-]{1,20}$`)
	memReName  = regexp.MustCompile(`^[A-Za-z\s\.\-']{1,100}$`)
	memRePhone = regexp.MustCompile(`^[0-9\+\- ]{1,15}$`)

	MemberStatuses = map[string]bool{"Active": true, "Inactive": true, "Visitor": true}
)

type memberPayload struct {
	MemberID         string `json:"member_id"`
	FullName         string `json:"full_name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Address          string `json:"address"`
	JoinDate         string `json:"join_date"` // YYYY-MM-DD or empty
	MembershipStatus string `json:"membership_status"`
	HomeCellName     string `json:"home_cell_name"`
}

func (p *memberPayload) normalize() {
	trim := func(s string) string { return strings.TrimSpace(s) }
	p.MemberID = trim(p.MemberID)
	p.FullName = strings.Join(strings.Fields(p.FullName), " ")
	p.Phone = trim(p.Phone)
	p.Email = trim(strings.ToLower(p.Email))
	p.Address = trim(p.Address)
	p.JoinDate = trim(p.JoinDate)
	p.MembershipStatus = trim(p.MembershipStatus)
	p.HomeCellName = trim(p.HomeCellName)
}

func memDigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validateMember(p *memberPayload) map[string]string {
	errs := map[string]string{}

	if p.MemberID == "" || !memReCode.MatchString(p.MemberID) {
		errs["member_id"] = "member code must be letters, digits or dashes (max 20)"
	}
	if p.FullName == "" || !memReName.MatchString(p.FullName) {
		errs["full_name"] = "full name must be letters (max 100)"
	}
	if !memRePhone.MatchString(p.Phone) {
		errs["phone"] = "phone format is invalid"
	} else if d := memDigitsOnly(p.Phone); len(d) < 9 || len(d) > 12 {
		errs["phone"] = "phone must have 9-12 digits"
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		errs["email"] = "email format is invalid"
	}
	if p.JoinDate != "" {
		if _, err := time.Parse("2006-01-02", p.JoinDate); err != nil {
			errs["join_date"] = "join date must be YYYY-MM-DD or empty"
		}
	}
	if !MemberStatuses[p.MembershipStatus] {
		errs["membership_status"] = "choose a membership status"
	}
	if p.HomeCellName != "" {
		var cell models.HomeCell
		if err := database.DB.First(&cell, "name = ?", p.HomeCellName).Error; err != nil {
			errs["home_cell_name"] = "home cell does not exist"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (p *memberPayload) apply(m *models.Member) {
	if p.JoinDate != "" {
		if d, err := time.Parse("2006-01-02", p.JoinDate); err == nil {
			m.JoinDate = &d
		}
	}
	m.MemberID = p.MemberID
	m.FullName = p.FullName
	m.Phone = p.Phone
	m.Email = p.Email
	m.Address = p.Address
	m.MembershipStatus = p.MembershipStatus
	m.HomeCellName = p.HomeCellName
}

// ===== Handlers =====

// GET /api/members?q=&status=&cell=&page=&size=
func (h *MemberHandler) List(c echo.Context) error {
	q := trimmed(c, "q")
	status := trimmed(c, "status")
	cell := trimmed(c, "cell")
	page, size := pageSize(c)

	var items []models.Member
	tx := database.DB.Model(&models.Member{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("member_id ILIKE ? OR full_name ILIKE ? OR phone ILIKE ?", like, like, like)
	}
	if status != "" {
		tx = tx.Where("membership_status = ?", status)
	}
	if cell != "" {
		tx = tx.Where("home_cell_name = ?", cell)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if err := tx.Order("created_at DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  items,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// GET /api/members/unassigned
func (h *MemberHandler) Unassigned(c echo.Context) error {
	var members []models.Member
	if err := database.DB.Find(&members).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	out := assignment.Unassigned(members)
	if out == nil {
		out = []models.Member{}
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/members/:id
func (h *MemberHandler) Get(c echo.Context) error {
	var m models.Member
	if err := database.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, m)
}

// POST /api/members
func (h *MemberHandler) Create(c echo.Context) error {
	var p memberPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateMember(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	m := models.Member{ID: uuid.NewString()}
	p.apply(&m)
	if err := database.DB.Create(&m).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, m)
}

// PUT /api/members/:id
func (h *MemberHandler) Update(c echo.Context) error {
	var existing models.Member
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p memberPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateMember(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	p.apply(&existing)
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /api/members/:id
func (h *MemberHandler) Delete(c echo.Context) error {
	if err := database.DB.Delete(&models.Member{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /api/members/import, bulk create, all-or-nothing
func (h *MemberHandler) Import(c echo.Context) error {
	var arr []memberPayload
	if err := c.Bind(&arr); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if len(arr) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"members": "at least one row is required"},
		})
	}
	var inserted []models.Member
	errFields := []map[string]any{}

	for i, p := range arr {
		p.normalize()
		if errs := validateMember(&p); errs != nil {
			errFields = append(errFields, map[string]any{"index": i, "fields": errs})
			continue
		}
		m := models.Member{ID: uuid.NewString()}
		p.apply(&m)
		inserted = append(inserted, m)
	}
	if len(errFields) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "BULK_VALIDATION_ERROR",
			"issues": errFields,
		})
	}
	if err := database.DB.Create(&inserted).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"inserted": len(inserted)})
}

type assignReq struct {
	HomeCellName string `json:"home_cell_name"`
	Note         string `json:"note"`
}

// POST /api/members/:id/assign
func (h *MemberHandler) Assign(c echo.Context) error {
	return h.moveMember(c, false)
}

// POST /api/members/:id/transfer, like assign but writes a transfer-log row
func (h *MemberHandler) Transfer(c echo.Context) error {
	return h.moveMember(c, true)
}

func (h *MemberHandler) moveMember(c echo.Context, logMove bool) error {
	var m models.Member
	if err := database.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var req assignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	target := strings.TrimSpace(req.HomeCellName)
	if target == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"home_cell_name": "home_cell_name is required"},
		})
	}
	var cell models.HomeCell
	if err := database.DB.First(&cell, "name = ?", target).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"home_cell_name": "home cell does not exist"},
		})
	}

	from := m.HomeCellName
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Member{}).Where("id = ?", m.ID).
			Update("home_cell_name", cell.Name).Error; err != nil {
			return err
		}
		if logMove {
			return tx.Create(&models.TransferLog{
				MemberID: m.ID,
				FromCell: from,
				ToCell:   cell.Name,
				MovedAt:  time.Now(),
				Note:     strings.TrimSpace(req.Note),
			}).Error
		}
		return nil
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	m.HomeCellName = cell.Name
	return c.JSON(http.StatusOK, m)
}

// POST /api/members/:id/unassign
func (h *MemberHandler) Unassign(c echo.Context) error {
	var m models.Member
	if err := database.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Model(&m).Update("home_cell_name", "").Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	m.HomeCellName = ""
	return c.JSON(http.StatusOK, m)
}

// GET /api/members/:id/transfers
func (h *MemberHandler) Transfers(c echo.Context) error {
	var rows []models.TransferLog
	if err := database.DB.Where("member_id = ?", c.Param("id")).
		Order("moved_at DESC, id DESC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rows)
}
