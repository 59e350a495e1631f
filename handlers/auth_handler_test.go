package handlers

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/osoroyal/churchhub/database"
	"github.com/osoroyal/churchhub/models"
)

func seedUser(t *testing.T, username, password, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	u := models.User{Username: username, Password: string(hash), Role: role, Name: "Test User"}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func TestLogin(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "pastor1", "sunday-best", "pastor")
	h := NewAuthHandler("test-secret")

	rec := doJSON(t, h.Login, http.MethodPost, "/", map[string]any{
		"username": "  Pastor1  ", "password": "sunday-best",
	})
	requireStatus(t, rec, http.StatusOK)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Role     string `json:"role"`
			Username string `json:"username"`
		} `json:"user"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "pastor", resp.User.Role)
	assert.Equal(t, "pastor1", resp.User.Username)

	tk, err := jwt.Parse(resp.Token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := tk.Claims.(jwt.MapClaims)
	assert.Equal(t, "pastor", claims["role"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	setupTestDB(t)
	seedUser(t, "pastor1", "sunday-best", "pastor")
	h := NewAuthHandler("test-secret")

	rec := doJSON(t, h.Login, http.MethodPost, "/", map[string]any{
		"username": "pastor1", "password": "wrong",
	})
	requireStatus(t, rec, http.StatusUnauthorized)

	rec = doJSON(t, h.Login, http.MethodPost, "/", map[string]any{
		"username": "nobody", "password": "sunday-best",
	})
	requireStatus(t, rec, http.StatusUnauthorized)

	rec = doJSON(t, h.Login, http.MethodPost, "/", map[string]any{"username": "pastor1"})
	requireStatus(t, rec, http.StatusBadRequest)
}

// asUser injects the context values the JWT middleware normally sets.
func asUser(uid uint, h echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set("user_id", uid)
		return h(c)
	}
}

func TestChangePassword(t *testing.T) {
	setupTestDB(t)
	u := seedUser(t, "leader1", "old-password", "leader")
	h := NewProfileHandler()

	// wrong current password
	rec := doJSON(t, asUser(u.ID, h.ChangePassword), http.MethodPut, "/", map[string]any{
		"current_password": "guess", "new_password": "fresh-password",
	})
	requireStatus(t, rec, http.StatusUnauthorized)

	// too short
	rec = doJSON(t, asUser(u.ID, h.ChangePassword), http.MethodPut, "/", map[string]any{
		"current_password": "old-password", "new_password": "short",
	})
	requireStatus(t, rec, http.StatusBadRequest)

	rec = doJSON(t, asUser(u.ID, h.ChangePassword), http.MethodPut, "/", map[string]any{
		"current_password": "old-password", "new_password": "fresh-password",
	})
	requireStatus(t, rec, http.StatusOK)

	var stored models.User
	require.NoError(t, database.DB.First(&stored, "id = ?", u.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("fresh-password")))

	// no identity on the context
	rec = doJSON(t, h.ChangePassword, http.MethodPut, "/", map[string]any{
		"current_password": "fresh-password", "new_password": "another-password",
	})
	requireStatus(t, rec, http.StatusUnauthorized)
}
