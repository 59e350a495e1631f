package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

var Channels = map[string]bool{"sms": true, "email": true}

type MessageHandler struct{}

func NewMessageHandler() *MessageHandler { return &MessageHandler{} }

type messagePayload struct {
	Audience string `json:"audience"` // all | district:{id} | zone:{id} | cell:{name}
	Channel  string `json:"channel"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

func (p *messagePayload) normalize() {
	p.Audience = strings.TrimSpace(p.Audience)
	p.Channel = strings.ToLower(strings.TrimSpace(p.Channel))
	p.Subject = strings.TrimSpace(p.Subject)
	p.Body = strings.TrimSpace(p.Body)
}

// resolveRecipients turns an audience selector into the count of active
// members it reaches. Unknown selectors return -1.
func resolveRecipients(audience string) int64 {
	tx := database.DB.Model(&models.Member{}).Where("membership_status = ?", "Active")

	switch {
	case audience == "all":
		// no narrowing

	case strings.HasPrefix(audience, "cell:"):
		tx = tx.Where("home_cell_name = ?", strings.TrimPrefix(audience, "cell:"))

	case strings.HasPrefix(audience, "zone:"):
		id, err := strconv.Atoi(strings.TrimPrefix(audience, "zone:"))
		if err != nil {
			return -1
		}
		var names []string
		if err := database.DB.Model(&models.HomeCell{}).Where("zone_id = ?", id).Pluck("name", &names).Error; err != nil || len(names) == 0 {
			return 0
		}
		tx = tx.Where("home_cell_name IN ?", names)

	case strings.HasPrefix(audience, "district:"):
		id, err := strconv.Atoi(strings.TrimPrefix(audience, "district:"))
		if err != nil {
			return -1
		}
		var names []string
		if err := database.DB.Model(&models.HomeCell{}).Where("district_id = ?", id).Pluck("name", &names).Error; err != nil || len(names) == 0 {
			return 0
		}
		tx = tx.Where("home_cell_name IN ?", names)

	default:
		return -1
	}

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return -1
	}
	return n
}

// GET /api/messages?page=&size=
func (h *MessageHandler) List(c echo.Context) error {
	page, size := pageSize(c)
	var items []models.Message
	var total int64
	if err := database.DB.Model(&models.Message{}).Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if err := database.DB.Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items, "page": page, "size": size, "total": total,
	})
}

// POST /api/messages
// Resolves the audience and stores the send log. Actual delivery goes through
// the SMS/email gateway, outside this service.
func (h *MessageHandler) Send(c echo.Context) error {
	var p messagePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()

	errs := map[string]string{}
	if p.Audience == "" {
		errs["audience"] = "audience is required"
	}
	if !Channels[p.Channel] {
		errs["channel"] = "channel must be sms or email"
	}
	if p.Body == "" {
		errs["body"] = "body is required"
	}
	if p.Channel == "email" && p.Subject == "" {
		errs["subject"] = "subject is required for email"
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	n := resolveRecipients(p.Audience)
	if n < 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"audience": "audience selector is invalid"},
		})
	}

	msg := models.Message{
		Audience:   p.Audience,
		Channel:    p.Channel,
		Subject:    p.Subject,
		Body:       p.Body,
		Recipients: n,
	}
	if uid, ok := getUserID(c); ok {
		msg.CreatedBy = uid
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, msg)
}
