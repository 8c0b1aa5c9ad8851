package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type healthResponse struct {
	OK bool   `json:"ok"`
	DB string `json:"db"`
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.health)
}

func (h *HealthHandler) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, healthResponse{OK: false, DB: "error"})
	}
	return c.JSON(http.StatusOK, healthResponse{OK: true, DB: "connected"})
}
