package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	appName string
	version string
}

func NewHealthHandler(appName, version string) *HealthHandler {
	return &HealthHandler{
		appName: appName,
		version: version,
	}
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"message": "DevMart Backend is running",
	})
}

func (h *HealthHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"name":    h.appName,
		"version": h.version,
		"status":  "operational",
		"endpoints": map[string]string{
			"health":     "/health",
			"auth":       "/api/v1/auth",
			"categories": "/api/v1/categories",
			"products":   "/api/v1/products",
			"orders":     "/api/v1/orders",
			"metrics":    "/metrics",
		},
	})
}
