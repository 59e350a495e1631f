package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/osoroyal/churchhub/assignment"
	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

type ZoneHandler struct{}

func NewZoneHandler() *ZoneHandler { return &ZoneHandler{} }

type zonePayload struct {
	Name        string `json:"name"`
	DistrictID  uint   `json:"district_id"`
	Description string `json:"description"`
	LeaderID    *uint  `json:"leader_id"`
	IsActive    *bool  `json:"is_active"`
}

func (p *zonePayload) normalize() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.Description = strings.TrimSpace(p.Description)
}

// validateZone also resolves the owning district; a zone never exists without one.
func validateZone(p *zonePayload) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	} else if len(p.Name) > 100 {
		errs["name"] = "name must be at most 100 characters"
	}
	if p.DistrictID == 0 {
		errs["district_id"] = "district_id is required"
	} else {
		var d models.District
		if err := database.DB.First(&d, "id = ?", p.DistrictID).Error; err != nil {
			errs["district_id"] = "district does not exist"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /api/homecells/zones
func (h *ZoneHandler) List(c echo.Context) error {
	var items []models.Zone
	if err := database.DB.Order("id ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/homecells/districts/:id/zones
func (h *ZoneHandler) ListByDistrict(c echo.Context) error {
	var items []models.Zone
	if err := database.DB.Where("district_id = ?", c.Param("id")).Order("id ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// POST /api/homecells/zones
func (h *ZoneHandler) Create(c echo.Context) error {
	var p zonePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateZone(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	z := models.Zone{
		DistrictID:  p.DistrictID,
		Name:        p.Name,
		Description: p.Description,
		LeaderID:    p.LeaderID,
		IsActive:    true,
	}
	if p.IsActive != nil {
		z.IsActive = *p.IsActive
	}
	if err := database.DB.Create(&z).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, z)
}

// PUT /api/homecells/zones/:id
func (h *ZoneHandler) Update(c echo.Context) error {
	var existing models.Zone
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p zonePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	// district reassignment is not supported from the UI; keep the owner
	p.DistrictID = existing.DistrictID
	if errs := validateZone(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	existing.Name = p.Name
	existing.Description = p.Description
	existing.LeaderID = p.LeaderID
	if p.IsActive != nil {
		existing.IsActive = *p.IsActive
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// GET /api/homecells/zones/:id/impact
func (h *ZoneHandler) Impact(c echo.Context) error {
	var z models.Zone
	if err := database.DB.First(&z, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var cells []models.HomeCell
	var members []models.Member
	if err := database.DB.Find(&cells).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Find(&members).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, assignment.ZoneImpact(z.ID, cells, members))
}

// DELETE /api/homecells/zones/:id
// Removes the zone's home cells too; members keep their rows with the
// reference cleared.
func (h *ZoneHandler) Delete(c echo.Context) error {
	var z models.Zone
	if err := database.DB.First(&z, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var cellNames []string
		if err := tx.Model(&models.HomeCell{}).Where("zone_id = ?", z.ID).Pluck("name", &cellNames).Error; err != nil {
			return err
		}
		if len(cellNames) > 0 {
			if err := tx.Model(&models.Member{}).Where("home_cell_name IN ?", cellNames).
				Update("home_cell_name", "").Error; err != nil {
				return err
			}
			if err := tx.Where("zone_id = ?", z.ID).Delete(&models.HomeCell{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&z).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
