package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

var (
	staffReCode = regexp.MustCompile(`^[A-Za-z0-9\-]{1,20}$`)

	EmploymentStatuses = map[string]bool{"active": true, "suspended": true, "left": true}
)

type StaffHandler struct{}

func NewStaffHandler() *StaffHandler { return &StaffHandler{} }

type staffPayload struct {
	StaffCode        string `json:"staff_code"`
	FullName         string `json:"full_name"`
	Title            string `json:"title"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Salary           int64  `json:"salary"`
	EmploymentStatus string `json:"employment_status"`
}

func (p *staffPayload) normalize() {
	trim := func(s string) string { return strings.TrimSpace(s) }
	p.StaffCode = trim(p.StaffCode)
	p.FullName = strings.Join(strings.Fields(p.FullName), " ")
	p.Title = trim(p.Title)
	p.Phone = trim(p.Phone)
	p.Email = trim(strings.ToLower(p.Email))
	p.EmploymentStatus = trim(strings.ToLower(p.EmploymentStatus))
}

func validateStaff(p *staffPayload) map[string]string {
	errs := map[string]string{}
	if p.StaffCode == "" || !staffReCode.MatchString(p.StaffCode) {
		errs["staff_code"] = "staff code must be letters, digits or dashes (max 20)"
	}
	if p.FullName == "" {
		errs["full_name"] = "full name is required"
	}
	if p.Title == "" {
		errs["title"] = "title is required"
	}
	if !memRePhone.MatchString(p.Phone) {
		errs["phone"] = "phone format is invalid"
	}
	if p.Salary < 0 {
		errs["salary"] = "salary cannot be negative"
	}
	if !EmploymentStatuses[p.EmploymentStatus] {
		errs["employment_status"] = "choose an employment status"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /api/staff?q=&page=&size=
func (h *StaffHandler) List(c echo.Context) error {
	q := trimmed(c, "q")
	page, size := pageSize(c)

	var items []models.Staff
	tx := database.DB.Model(&models.Staff{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("staff_code ILIKE ? OR full_name ILIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if err := tx.Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items, "page": page, "size": size, "total": total,
	})
}

// POST /api/staff
func (h *StaffHandler) Create(c echo.Context) error {
	var p staffPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStaff(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	s := models.Staff{
		StaffCode: p.StaffCode, FullName: p.FullName, Title: p.Title,
		Phone: p.Phone, Email: p.Email, Salary: p.Salary,
		EmploymentStatus: p.EmploymentStatus,
	}
	if err := database.DB.Create(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

// PUT /api/staff/:id
func (h *StaffHandler) Update(c echo.Context) error {
	var existing models.Staff
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p staffPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStaff(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	existing.StaffCode = p.StaffCode
	existing.FullName = p.FullName
	existing.Title = p.Title
	existing.Phone = p.Phone
	existing.Email = p.Email
	existing.Salary = p.Salary
	existing.EmploymentStatus = p.EmploymentStatus
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /api/staff/:id
func (h *StaffHandler) Delete(c echo.Context) error {
	if err := database.DB.Delete(&models.Staff{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
