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

type DistrictHandler struct{}

func NewDistrictHandler() *DistrictHandler { return &DistrictHandler{} }

type districtPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LeaderID    *uint  `json:"leader_id"`
	IsActive    *bool  `json:"is_active"`
}

func (p *districtPayload) normalize() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.Description = strings.TrimSpace(p.Description)
}

func validateDistrict(p *districtPayload) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	} else if len(p.Name) > 100 {
		errs["name"] = "name must be at most 100 characters"
	}
	if len(p.Description) > 255 {
		errs["description"] = "description must be at most 255 characters"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /api/homecells/districts?q=
func (h *DistrictHandler) List(c echo.Context) error {
	q := trimmed(c, "q")
	var items []models.District
	tx := database.DB.Model(&models.District{})
	if q != "" {
		tx = tx.Where("name ILIKE ?", "%"+q+"%")
	}
	if err := tx.Order("id ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/homecells/districts/:id
func (h *DistrictHandler) Get(c echo.Context) error {
	var d models.District
	if err := database.DB.First(&d, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, d)
}

// POST /api/homecells/districts
func (h *DistrictHandler) Create(c echo.Context) error {
	var p districtPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateDistrict(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	d := models.District{
		Name:        p.Name,
		Description: p.Description,
		LeaderID:    p.LeaderID,
		IsActive:    true,
	}
	if p.IsActive != nil {
		d.IsActive = *p.IsActive
	}
	if err := database.DB.Create(&d).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, d)
}

// PUT /api/homecells/districts/:id
func (h *DistrictHandler) Update(c echo.Context) error {
	var existing models.District
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p districtPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateDistrict(&p); errs != nil {
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

// GET /api/homecells/districts/:id/impact
// Cascade preview shown in the confirm dialog before a delete.
func (h *DistrictHandler) Impact(c echo.Context) error {
	var d models.District
	if err := database.DB.First(&d, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var zones []models.Zone
	var cells []models.HomeCell
	var members []models.Member
	if err := database.DB.Find(&zones).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Find(&cells).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Find(&members).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, assignment.DistrictImpact(d.ID, zones, cells, members))
}

// DELETE /api/homecells/districts/:id
// Cascades to zones and home cells in one transaction. Member rows are kept;
// their cell references are cleared so nothing points at a deleted cell.
func (h *DistrictHandler) Delete(c echo.Context) error {
	var d models.District
	if err := database.DB.First(&d, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var zoneIDs []uint
		if err := tx.Model(&models.Zone{}).Where("district_id = ?", d.ID).Pluck("id", &zoneIDs).Error; err != nil {
			return err
		}
		if len(zoneIDs) > 0 {
			var cellNames []string
			if err := tx.Model(&models.HomeCell{}).Where("zone_id IN ?", zoneIDs).Pluck("name", &cellNames).Error; err != nil {
				return err
			}
			if len(cellNames) > 0 {
				if err := tx.Model(&models.Member{}).Where("home_cell_name IN ?", cellNames).
					Update("home_cell_name", "").Error; err != nil {
					return err
				}
			}
			if err := tx.Where("zone_id IN ?", zoneIDs).Delete(&models.HomeCell{}).Error; err != nil {
				return err
			}
			if err := tx.Where("district_id = ?", d.ID).Delete(&models.Zone{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&d).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
