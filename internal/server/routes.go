package server

import (
	"warehouse/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Ledger  *handler.LedgerHandler
	History *handler.HistoryHandler
	Health  *handler.HealthHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	h.Ledger.RegisterRoutes(e)
	h.History.RegisterRoutes(e)
	h.Health.RegisterRoutes(e)
}
