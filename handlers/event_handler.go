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
	EventService = "service"
	EventSpecial = "special"
	EventHoliday = "holiday"
)

var EventKinds = map[string]bool{EventService: true, EventSpecial: true, EventHoliday: true}

type EventHandler struct{}

func NewEventHandler() *EventHandler { return &EventHandler{} }

type eventPayload struct {
	Title     string `json:"title"`
	Location  string `json:"location"`
	Note      string `json:"note"`
	Date      string `json:"date"`
	EndDate   string `json:"end_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (p *eventPayload) normalize() {
	trim := func(s string) string { return strings.TrimSpace(s) }
	p.Title = strings.Join(strings.Fields(p.Title), " ")
	p.Location = trim(p.Location)
	p.Note = trim(p.Note)
	p.Date = trim(p.Date)
	p.EndDate = trim(p.EndDate)
	p.StartTime = trim(p.StartTime)
	p.EndTime = trim(p.EndTime)
}

func validateEvent(p *eventPayload, kind string) map[string]string {
	errs := map[string]string{}
	if p.Title == "" {
		errs["title"] = "title is required"
	}
	if p.Date == "" {
		errs["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if p.EndDate != "" {
		if _, err := time.Parse("2006-01-02", p.EndDate); err != nil {
			errs["end_date"] = "end_date must be YYYY-MM-DD"
		} else if p.EndDate < p.Date {
			errs["end_date"] = "end_date cannot be before date"
		}
	}
	for field, v := range map[string]string{"start_time": p.StartTime, "end_time": p.EndTime} {
		if v != "" && !cellReTime.MatchString(v) {
			errs[field] = field + " must be HH:MM"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (h *EventHandler) listKind(c echo.Context, kind string) error {
	var items []models.Event
	if err := database.DB.Where("kind = ?", kind).Order("date ASC, id ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

func (h *EventHandler) createKind(c echo.Context, kind string) error {
	var p eventPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateEvent(&p, kind); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	e := models.Event{
		Kind: kind, Title: p.Title, Location: p.Location, Note: p.Note,
		Date: p.Date, EndDate: p.EndDate, StartTime: p.StartTime, EndTime: p.EndTime,
	}
	if err := database.DB.Create(&e).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *EventHandler) updateKind(c echo.Context, kind string) error {
	var existing models.Event
	if err := database.DB.First(&existing, "id = ? AND kind = ?", c.Param("id"), kind).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p eventPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateEvent(&p, kind); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	existing.Title = p.Title
	existing.Location = p.Location
	existing.Note = p.Note
	existing.Date = p.Date
	existing.EndDate = p.EndDate
	existing.StartTime = p.StartTime
	existing.EndTime = p.EndTime
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *EventHandler) deleteKind(c echo.Context, kind string) error {
	if err := database.DB.Delete(&models.Event{}, "id = ? AND kind = ?", c.Param("id"), kind).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/events/:id
func (h *EventHandler) GetByID(c echo.Context) error {
	var e models.Event
	if err := database.DB.First(&e, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, e)
}

// GET /api/events returns all kinds together for the combined calendar view
func (h *EventHandler) ListAll(c echo.Context) error {
	var items []models.Event
	if err := database.DB.Order("date ASC, id ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

func (h *EventHandler) ListServices(c echo.Context) error  { return h.listKind(c, EventService) }
func (h *EventHandler) CreateService(c echo.Context) error { return h.createKind(c, EventService) }
func (h *EventHandler) UpdateService(c echo.Context) error { return h.updateKind(c, EventService) }
func (h *EventHandler) DeleteService(c echo.Context) error { return h.deleteKind(c, EventService) }

func (h *EventHandler) ListSpecials(c echo.Context) error  { return h.listKind(c, EventSpecial) }
func (h *EventHandler) CreateSpecial(c echo.Context) error { return h.createKind(c, EventSpecial) }
func (h *EventHandler) UpdateSpecial(c echo.Context) error { return h.updateKind(c, EventSpecial) }
func (h *EventHandler) DeleteSpecial(c echo.Context) error { return h.deleteKind(c, EventSpecial) }

func (h *EventHandler) ListHolidays(c echo.Context) error  { return h.listKind(c, EventHoliday) }
func (h *EventHandler) CreateHoliday(c echo.Context) error { return h.createKind(c, EventHoliday) }
func (h *EventHandler) UpdateHoliday(c echo.Context) error { return h.updateKind(c, EventHoliday) }
func (h *EventHandler) DeleteHoliday(c echo.Context) error { return h.deleteKind(c, EventHoliday) }
