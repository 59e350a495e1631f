package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/osoroyal/churchhub/assignment"
	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

var (
	cellReTime = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

	MeetingDays = map[string]bool{
		"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
		"Friday": true, "Saturday": true, "Sunday": true,
	}
)

type HomeCellHandler struct{}

func NewHomeCellHandler() *HomeCellHandler { return &HomeCellHandler{} }

type homeCellPayload struct {
	Name            string `json:"name"`
	ZoneID          uint   `json:"zone_id"`
	Description     string `json:"description"`
	LeaderID        *uint  `json:"leader_id"`
	MeetingDay      string `json:"meeting_day"`
	MeetingTime     string `json:"meeting_time"`
	MeetingLocation string `json:"meeting_location"`
	IsActive        *bool  `json:"is_active"`
}

func (p *homeCellPayload) normalize() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.Description = strings.TrimSpace(p.Description)
	p.MeetingDay = strings.TrimSpace(p.MeetingDay)
	p.MeetingTime = strings.TrimSpace(p.MeetingTime)
	p.MeetingLocation = strings.TrimSpace(p.MeetingLocation)
}

// validateHomeCell resolves the owning zone and returns it so the handler can
// copy the zone's district_id instead of trusting the client.
func validateHomeCell(p *homeCellPayload) (*models.Zone, map[string]string) {
	errs := map[string]string{}
	var zone *models.Zone

	if p.Name == "" {
		errs["name"] = "name is required"
	} else if len(p.Name) > 100 {
		errs["name"] = "name must be at most 100 characters"
	}
	if p.ZoneID == 0 {
		errs["zone_id"] = "zone_id is required"
	} else {
		var z models.Zone
		if err := database.DB.First(&z, "id = ?", p.ZoneID).Error; err != nil {
			errs["zone_id"] = "zone does not exist"
		} else {
			zone = &z
		}
	}
	if p.MeetingDay != "" && !MeetingDays[p.MeetingDay] {
		errs["meeting_day"] = "meeting_day must be a weekday name"
	}
	if p.MeetingTime != "" && !cellReTime.MatchString(p.MeetingTime) {
		errs["meeting_time"] = "meeting_time must be HH:MM"
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return zone, nil
}

func attachMemberCounts(cells []models.HomeCell) error {
	var members []models.Member
	if err := database.DB.Find(&members).Error; err != nil {
		return err
	}
	counts := assignment.CountsByCell(members)
	for i := range cells {
		cells[i].MemberCount = counts[cells[i].Name]
	}
	return nil
}

// GET /api/homecells/homecells?q=
func (h *HomeCellHandler) List(c echo.Context) error {
	q := trimmed(c, "q")
	var items []models.HomeCell
	tx := database.DB.Model(&models.HomeCell{})
	if q != "" {
		tx = tx.Where("name ILIKE ?", "%"+q+"%")
	}
	if err := tx.Order("id ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := attachMemberCounts(items); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/homecells/zones/:id/homecells
func (h *HomeCellHandler) ListByZone(c echo.Context) error {
	var items []models.HomeCell
	if err := database.DB.Where("zone_id = ?", c.Param("id")).Order("id ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := attachMemberCounts(items); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/homecells/homecells/:id
func (h *HomeCellHandler) Get(c echo.Context) error {
	var cell models.HomeCell
	if err := database.DB.First(&cell, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var n int64
	if err := database.DB.Model(&models.Member{}).Where("home_cell_name = ?", cell.Name).Count(&n).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	cell.MemberCount = n
	return c.JSON(http.StatusOK, cell)
}

// POST /api/homecells/homecells
func (h *HomeCellHandler) Create(c echo.Context) error {
	var p homeCellPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	zone, errs := validateHomeCell(&p)
	if errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	cell := models.HomeCell{
		ZoneID:          zone.ID,
		DistrictID:      zone.DistrictID, // derived, keeps the denormalized copy consistent
		Name:            p.Name,
		Description:     p.Description,
		LeaderID:        p.LeaderID,
		MeetingDay:      p.MeetingDay,
		MeetingTime:     p.MeetingTime,
		MeetingLocation: p.MeetingLocation,
		IsActive:        true,
	}
	if p.IsActive != nil {
		cell.IsActive = *p.IsActive
	}
	if err := database.DB.Create(&cell).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, cell)
}

// PUT /api/homecells/homecells/:id
// Renaming rewrites members' home_cell_name in the same transaction so the
// name reference never orphans.
func (h *HomeCellHandler) Update(c echo.Context) error {
	var existing models.HomeCell
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p homeCellPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	p.ZoneID = existing.ZoneID // zone reassignment is not supported from the UI
	_, errs := validateHomeCell(&p)
	if errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	oldName := existing.Name
	existing.Name = p.Name
	existing.Description = p.Description
	existing.LeaderID = p.LeaderID
	existing.MeetingDay = p.MeetingDay
	existing.MeetingTime = p.MeetingTime
	existing.MeetingLocation = p.MeetingLocation
	if p.IsActive != nil {
		existing.IsActive = *p.IsActive
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		if oldName != existing.Name {
			return tx.Model(&models.Member{}).Where("home_cell_name = ?", oldName).
				Update("home_cell_name", existing.Name).Error
		}
		return nil
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /api/homecells/homecells/:id
// Members are never deleted with their cell; the reference is cleared and
// they show up as unassigned.
func (h *HomeCellHandler) Delete(c echo.Context) error {
	var cell models.HomeCell
	if err := database.DB.First(&cell, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Member{}).Where("home_cell_name = ?", cell.Name).
			Update("home_cell_name", "").Error; err != nil {
			return err
		}
		return tx.Delete(&cell).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
