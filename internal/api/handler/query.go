package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// pagination extracts page and limit from the query string. Missing or
// unparseable values fall back to 1/10; values below 1 are treated as absent.
func pagination(c echo.Context) (page, limit int) {
	page = parsePositiveInt(c.QueryParam("page"), defaultPage)
	limit = parsePositiveInt(c.QueryParam("limit"), defaultLimit)
	return page, limit
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
