package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler { return &ProfileHandler{} }

type changePasswordReq struct {
	Current string `json:"current_password"`
	New     string `json:"new_password"`
}

// PUT /api/profile/password
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "UNAUTHORIZED"})
	}

	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	req.New = strings.TrimSpace(req.New)
	if len(req.New) < 8 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"new_password": "password must be at least 8 characters"},
		})
	}

	var u models.User
	if err := database.DB.First(&u, "id = ?", uid).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Current)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "INVALID_CREDENTIALS"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.New), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}
	if err := database.DB.Model(&u).Update("password", string(hash)).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
