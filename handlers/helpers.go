package handlers

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// string -> int with a fallback when parsing fails
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// pageSize reads page/size query params with the usual clamps.
func pageSize(c echo.Context) (int, int) {
	page := atoiOr(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	size := atoiOr(c.QueryParam("size"), 20)
	if size < 1 {
		size = 1
	} else if size > 100 {
		size = 100
	}
	return page, size
}

// getUserID reads the id the JWT middleware put on the context.
func getUserID(c echo.Context) (uint, bool) {
	switch v := c.Get("user_id").(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	default:
		return 0, false
	}
}

func trimmed(c echo.Context, param string) string {
	return strings.TrimSpace(c.QueryParam(param))
}
