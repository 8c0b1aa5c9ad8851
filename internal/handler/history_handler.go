package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"warehouse/internal/domain/model"
	"warehouse/internal/usecase"

	"github.com/labstack/echo/v4"
)

// *usecase.HistoryUsecase
type HistoryService interface {
	QueryHistoryRange(ctx context.Context, in usecase.HistoryRangeInput) ([]model.HistoryEntry, error)
	ListHistory(ctx context.Context) ([]model.HistoryEntry, error)
}

// 空欄は未指定
type historyForm struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type HistoryHandler struct {
	uc HistoryService
}

// DI
func NewHistoryHandler(uc HistoryService) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

func (h *HistoryHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/history.html", h.list)
	e.POST("/history", h.review)
}

func (h *HistoryHandler) list(c echo.Context) error {
	entries, err := h.uc.ListHistory(c.Request().Context())
	if err != nil {
		return renderError(c, tmplHistory, page{}, err)
	}
	return c.Render(http.StatusOK, tmplHistory, page{History: entries})
}

func (h *HistoryHandler) review(c echo.Context) error {
	var f historyForm
	if err := bindForm(c, &f); err != nil {
		return renderInvalidInput(c, tmplHistory, page{}, err)
	}

	from, err := parseBound(f.From)
	if err != nil {
		return renderInvalidInput(c, tmplHistory, page{}, err)
	}
	to, err := parseBound(f.To)
	if err != nil {
		return renderInvalidInput(c, tmplHistory, page{}, err)
	}

	entries, err := h.uc.QueryHistoryRange(c.Request().Context(), usecase.HistoryRangeInput{From: from, To: to})
	if err != nil {
		return renderError(c, tmplHistory, page{}, err)
	}
	return c.Render(http.StatusOK, tmplHistory, page{Review: entries})
}

func parseBound(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
