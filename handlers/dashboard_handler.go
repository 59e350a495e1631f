package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/osoroyal/churchhub/assignment"
	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// GET /api/dashboard/summary
// One payload for the landing page: directory totals, hierarchy sizes,
// pending welfare and the next upcoming event.
func (h *DashboardHandler) Summary(c echo.Context) error {
	var members []models.Member
	if err := database.DB.Find(&members).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	active := 0
	for _, m := range members {
		if m.MembershipStatus == assignment.StatusActive {
			active++
		}
	}
	unassigned := len(assignment.Unassigned(members))

	var districts, zones, cells, pendingWelfare int64
	if err := database.DB.Model(&models.District{}).Count(&districts).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if err := database.DB.Model(&models.Zone{}).Count(&zones).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if err := database.DB.Model(&models.HomeCell{}).Count(&cells).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if err := database.DB.Model(&models.WelfareRequest{}).Where("status = ?", WelfarePending).Count(&pendingWelfare).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}

	var next *models.Event
	var e models.Event
	today := time.Now().Format("2006-01-02")
	err := database.DB.Where("date >= ?", today).Order("date ASC, id ASC").First(&e).Error
	if err == nil {
		next = &e
	} else if err != gorm.ErrRecordNotFound {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"members": map[string]any{
			"total":      len(members),
			"active":     active,
			"assigned":   len(members) - unassigned,
			"unassigned": unassigned,
			"rate":       assignment.Rate(members),
		},
		"hierarchy": map[string]any{
			"districts":  districts,
			"zones":      zones,
			"home_cells": cells,
		},
		"welfare_pending": pendingWelfare,
		"next_event":      next,
	})
}
