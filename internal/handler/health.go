package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness probe for load balancers.  It returns "ok" with
// 200 as long as the process is serving HTTP.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
