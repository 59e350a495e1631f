package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osoroyal/churchhub/assignment"
	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
	"github.com/osoroyal/churchhub/treeview"
)

type TreeHandler struct{}

func NewTreeHandler() *TreeHandler { return &TreeHandler{} }

// GET /api/homecells/tree?q=&expanded=d-1,z-3
// One endpoint behind every tree view variant. With no "expanded" param the
// first district opens and everything else stays collapsed.
func (h *TreeHandler) Get(c echo.Context) error {
	var districts []models.District
	var zones []models.Zone
	var cells []models.HomeCell
	var members []models.Member

	if err := database.DB.Order("id ASC").Find(&districts).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Order("id ASC").Find(&zones).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Order("id ASC").Find(&cells).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Find(&members).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	expanded := treeview.DefaultExpanded(districts)
	if raw := trimmed(c, "expanded"); raw != "" {
		expanded = treeview.ParseExpandSet(raw)
	}

	nodes := treeview.Build(districts, zones, cells, expanded, trimmed(c, "q"), assignment.CountsByCell(members))
	return c.JSON(http.StatusOK, map[string]any{
		"tree":            nodes,
		"assignment_rate": assignment.Rate(members),
		"unassigned":      len(assignment.Unassigned(members)),
	})
}
