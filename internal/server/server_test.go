package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"warehouse/internal/config"
	"warehouse/internal/domain/model"
	"warehouse/internal/handler"
	"warehouse/internal/server"
	"warehouse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLedger struct{}

func (stubLedger) AdjustBalance(context.Context, usecase.AdjustBalanceInput) (usecase.LedgerResult, error) {
	return usecase.LedgerResult{}, nil
}

func (stubLedger) RecordPurchase(context.Context, usecase.PurchaseInput) (usecase.LedgerResult, error) {
	return usecase.LedgerResult{}, nil
}

func (stubLedger) RecordSale(context.Context, usecase.SaleInput) (usecase.LedgerResult, error) {
	panic("boom")
}

func (stubLedger) Overview(context.Context) (model.Account, error) {
	return model.Account{ID: 1, Balance: decimal.NewFromInt(3), Stock: 2}, nil
}

func (stubLedger) ListProducts(context.Context) ([]model.Product, error) {
	return []model.Product{}, nil
}

type stubHistory struct{}

func (stubHistory) QueryHistoryRange(context.Context, usecase.HistoryRangeInput) ([]model.HistoryEntry, error) {
	return []model.HistoryEntry{}, nil
}

func (stubHistory) ListHistory(context.Context) ([]model.HistoryEntry, error) {
	return []model.HistoryEntry{}, nil
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newServer(t *testing.T, cfg config.Config) *server.Server {
	t.Helper()

	s, err := server.New(cfg, server.Handlers{
		Ledger:  handler.NewLedgerHandler(stubLedger{}),
		History: handler.NewHistoryHandler(stubHistory{}),
		Health:  handler.NewHealthHandler(okPinger{}),
	})
	require.NoError(t, err)
	return s
}

func TestServer_RoutesAreWired(t *testing.T) {
	s := newServer(t, config.Config{Port: "0"})

	for _, path := range []string{"/", "/balance_change_form.html", "/purchase_form.html", "/sale_form.html", "/history.html", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "path=%s", path)
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID), "path=%s", path)
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	s := newServer(t, config.Config{Port: "0"})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// パニックは500で返る
func TestServer_RecoversPanics(t *testing.T) {
	s := newServer(t, config.Config{Port: "0"})

	form := url.Values{"sale_list": {"A"}, "number_of_pieces": {"1"}, "unit_price": {"1"}}
	req := httptest.NewRequest(http.MethodPost, "/sale", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	s := newServer(t, config.Config{Port: "0", ShutdownTimeout: 2 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
