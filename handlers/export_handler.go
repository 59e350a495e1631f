package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/osoroyal/churchhub/assignment"
	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/export"
	"github.com/osoroyal/churchhub/models"
)

type ExportHandler struct{}

func NewExportHandler() *ExportHandler { return &ExportHandler{} }

// GET /api/homecells/homecells/:id/export?format=pdf|excel
// Streams the cell's member roster; the caller only sees success or failure.
func (h *ExportHandler) HomeCellRoster(c echo.Context) error {
	var cell models.HomeCell
	if err := database.DB.First(&cell, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var members []models.Member
	if err := database.DB.Order("full_name ASC").Find(&members).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	roster := assignment.MembersOf(members, cell.Name)

	format := strings.ToLower(trimmed(c, "format"))
	var (
		data []byte
		mime string
		ext  string
		err  error
	)
	switch format {
	case "excel":
		data, err = export.HomeCellExcel(cell, roster)
		mime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		ext = "xlsx"
	case "pdf":
		data, err = export.HomeCellPDF(cell, roster)
		mime = "application/pdf"
		ext = "pdf"
	default:
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"format": "format must be pdf or excel"},
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "EXPORT_FAILED"})
	}

	filename := fmt.Sprintf("%s-members.%s", strings.ReplaceAll(cell.Name, " ", "-"), ext)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, mime, data)
}
