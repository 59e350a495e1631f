package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

var (
	Funds   = map[string]bool{"tithe": true, "offering": true, "building": true, "other": true}
	Methods = map[string]bool{"cash": true, "momo": true, "bank": true, "cheque": true}
)

type ContributionHandler struct{}

func NewContributionHandler() *ContributionHandler { return &ContributionHandler{} }

type contributionPayload struct {
	MemberID string `json:"member_id"` // optional; anonymous when empty
	Fund     string `json:"fund"`
	Method   string `json:"method"`
	Amount   int64  `json:"amount"`   // minor units
	GivenAt  string `json:"given_at"` // YYYY-MM-DD
	Note     string `json:"note"`
}

func (p *contributionPayload) normalize() {
	p.MemberID = strings.TrimSpace(p.MemberID)
	p.Fund = strings.ToLower(strings.TrimSpace(p.Fund))
	p.Method = strings.ToLower(strings.TrimSpace(p.Method))
	p.GivenAt = strings.TrimSpace(p.GivenAt)
	p.Note = strings.TrimSpace(p.Note)
}

func validateContribution(p *contributionPayload) (time.Time, map[string]string) {
	errs := map[string]string{}
	var given time.Time

	if !Funds[p.Fund] {
		errs["fund"] = "choose a fund"
	}
	if !Methods[p.Method] {
		errs["method"] = "choose a payment method"
	}
	if p.Amount <= 0 {
		errs["amount"] = "amount must be positive"
	}
	if p.GivenAt == "" {
		errs["given_at"] = "given_at is required"
	} else {
		d, err := time.Parse("2006-01-02", p.GivenAt)
		if err != nil {
			errs["given_at"] = "given_at must be YYYY-MM-DD"
		} else {
			given = d
		}
	}
	if len(errs) > 0 {
		return given, errs
	}
	return given, nil
}

// GET /api/contributions?fund=&member=&from=&to=&page=&size=
func (h *ContributionHandler) List(c echo.Context) error {
	fund := trimmed(c, "fund")
	member := trimmed(c, "member")
	from := trimmed(c, "from")
	to := trimmed(c, "to")
	page, size := pageSize(c)

	tx := database.DB.Model(&models.Contribution{})
	if fund != "" {
		tx = tx.Where("fund = ?", fund)
	}
	if member != "" {
		tx = tx.Where("member_id = ?", member)
	}
	if from != "" {
		tx = tx.Where("given_at >= ?", from)
	}
	if to != "" {
		tx = tx.Where("given_at <= ?", to)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Contribution
	if err := tx.Order("given_at DESC, id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items, "page": page, "size": size, "total": total,
	})
}

// POST /api/contributions
func (h *ContributionHandler) Create(c echo.Context) error {
	var p contributionPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	given, errs := validateContribution(&p)
	if errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	rec := models.Contribution{
		MemberID: p.MemberID,
		Fund:     p.Fund,
		Method:   p.Method,
		Amount:   p.Amount,
		GivenAt:  given,
		Note:     p.Note,
	}
	if p.MemberID != "" {
		var m models.Member
		if err := database.DB.First(&m, "id = ?", p.MemberID).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"error": "VALIDATION_ERROR", "fields": map[string]string{"member_id": "member does not exist"},
			})
		}
		rec.MemberName = m.FullName
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

// DELETE /api/contributions/:id voids an entry; the ledger has no update path
func (h *ContributionHandler) Delete(c echo.Context) error {
	if err := database.DB.Delete(&models.Contribution{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/contributions/summary?from=&to=
// Totals by fund over a date range.
func (h *ContributionHandler) Summary(c echo.Context) error {
	from := trimmed(c, "from")
	to := trimmed(c, "to")

	type row struct {
		Fund  string `json:"fund"`
		Total int64  `json:"total"`
		Count int64  `json:"count"`
	}
	var rows []row

	tx := database.DB.Model(&models.Contribution{}).
		Select("fund, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("fund")
	if from != "" {
		tx = tx.Where("given_at >= ?", from)
	}
	if to != "" {
		tx = tx.Where("given_at <= ?", to)
	}
	if err := tx.Scan(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var grand int64
	for _, r := range rows {
		grand += r.Total
	}
	return c.JSON(http.StatusOK, map[string]any{"funds": rows, "grand_total": grand})
}
