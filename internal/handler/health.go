package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health is the liveness endpoint used by load balancers and monitoring
// systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
