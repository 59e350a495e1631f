package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

type StoreHandler struct{}

func NewStoreHandler() *StoreHandler { return &StoreHandler{} }

type catalogEntry struct {
	models.StoreModule
	Subscribed bool `json:"subscribed"`
	Enabled    bool `json:"enabled"`
}

// GET /api/store/modules returns the catalog with subscription state joined in
func (h *StoreHandler) Catalog(c echo.Context) error {
	var mods []models.StoreModule
	if err := database.DB.Order("id ASC").Find(&mods).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var subs []models.Subscription
	if err := database.DB.Find(&subs).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	byModule := make(map[uint]models.Subscription, len(subs))
	for _, s := range subs {
		byModule[s.ModuleID] = s
	}

	out := make([]catalogEntry, 0, len(mods))
	for _, m := range mods {
		e := catalogEntry{StoreModule: m}
		if s, ok := byModule[m.ID]; ok {
			e.Subscribed = true
			e.Enabled = s.Enabled
		}
		out = append(out, e)
	}
	return c.JSON(http.StatusOK, out)
}

type subscribeReq struct {
	ModuleID uint `json:"module_id"`
}

// POST /api/store/subscriptions
func (h *StoreHandler) Subscribe(c echo.Context) error {
	var req subscribeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	var mod models.StoreModule
	if err := database.DB.First(&mod, "id = ?", req.ModuleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var dup models.Subscription
	if err := database.DB.Where("module_id = ?", mod.ID).First(&dup).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "ALREADY_SUBSCRIBED"})
	}

	now := time.Now()
	sub := models.Subscription{ModuleID: mod.ID, Enabled: true, ActivatedAt: &now}
	if err := database.DB.Create(&sub).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, sub)
}

type subscriptionPatch struct {
	Enabled *bool `json:"enabled"`
}

// PATCH /api/store/subscriptions/:id toggles a module on/off
func (h *StoreHandler) Patch(c echo.Context) error {
	var sub models.Subscription
	if err := database.DB.First(&sub, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var body subscriptionPatch
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if body.Enabled == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"enabled": "enabled is required"},
		})
	}
	if err := database.DB.Model(&sub).Update("enabled", *body.Enabled).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	sub.Enabled = *body.Enabled
	return c.JSON(http.StatusOK, sub)
}
