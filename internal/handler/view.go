package handler

import (
	"errors"
	"net/http"

	"warehouse/internal/domain/model"
	"warehouse/internal/usecase"
	"warehouse/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	tmplIndex    = "index.html"
	tmplBalance  = "balance_change_form.html"
	tmplPurchase = "purchase_form.html"
	tmplSale     = "sale_form.html"
	tmplHistory  = "history.html"

	msgInvalidInput = "Error: Invalid input!"
	msgInternal     = "Error: Something went wrong!"
)

// テンプレートに渡す値
type page struct {
	Message      string
	ErrorMessage string

	StockLevel int64
	Balance    decimal.Decimal

	Products []model.Product
	History  []model.HistoryEntry
	Review   []model.HistoryEntry
}

// フォームをbindしてvalidatorタグで検証
func bindForm(c echo.Context, form interface{}) error {
	if err := c.Bind(form); err != nil {
		return errors.Join(validator.ErrInvalidInput, err)
	}
	if err := c.Validate(form); err != nil {
		return err
	}
	return nil
}

func renderInvalidInput(c echo.Context, name string, data page, err error) error {
	log.Debug().
		Err(err).
		Str("path", c.Path()).
		Interface("fields", validator.FieldErrors(err)).
		Msg("invalid form")

	data.ErrorMessage = msgInvalidInput
	return c.Render(http.StatusBadRequest, name, data)
}

// LedgerErrorならそのステータスとメッセージ、それ以外は500
func renderError(c echo.Context, name string, data page, err error) error {
	if le, ok := usecase.AsLedgerError(err); ok {
		data.ErrorMessage = le.Message
		return c.Render(le.Status, name, data)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("unexpected error")
	data.ErrorMessage = msgInternal
	return c.Render(http.StatusInternalServerError, name, data)
}
