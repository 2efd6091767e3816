package handler

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"monipack-backend/pkg/config"

	"github.com/labstack/echo/v4"
)

var cfg *config.Config

// Init wires the loaded configuration into the handler package
func Init(c *config.Config) {
	cfg = c
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns "PP Woven Sacks" into "pp-woven-sacks"
func slugify(text string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(s, "-")
}

// paramID parses the :id path parameter
func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
