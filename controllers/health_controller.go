package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"synthflow/config"
)

const apiVersion = "0.1.0"

// HealthController serves the root info and health-check endpoints.
type HealthController struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewHealthController(db *gorm.DB, cfg *config.Config) *HealthController {
	return &HealthController{db: db, cfg: cfg}
}

func (hc *HealthController) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"name":        hc.cfg.AppName,
		"version":     apiVersion,
		"environment": hc.cfg.Environment,
		"status":      "running",
	})
}

// Health pings the database and reports healthy or degraded.
func (hc *HealthController) Health(c echo.Context) error {
	checks := echo.Map{
		"api":      "healthy",
		"database": "healthy",
	}
	status := "healthy"

	if err := hc.db.WithContext(c.Request().Context()).Exec("SELECT 1").Error; err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		status = "degraded"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": status,
		"checks": checks,
	})
}
