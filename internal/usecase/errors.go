package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// エラーの種類（errors.Isで判定する）
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidOperation     = errors.New("invalid operation")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrProductPriceConflict = errors.New("product price conflict")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidRange         = errors.New("invalid range")
	ErrEmptyHistory         = errors.New("empty history")
	ErrInternal             = errors.New("internal error")
)

// 画面に出すメッセージとHTTPステータスを持つエラー
type LedgerError struct {
	Kind    error
	Status  int
	Message string
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *LedgerError) Unwrap() error {
	return e.Kind
}

func NewLedgerError(kind error, status int, message string) error {
	return &LedgerError{
		Kind:    kind,
		Status:  status,
		Message: message,
	}
}

func AsLedgerError(err error) (*LedgerError, bool) {
	var le *LedgerError
	ok := errors.As(err, &le)
	return le, ok
}

func invalidInput(message string) error {
	return NewLedgerError(ErrInvalidInput, http.StatusBadRequest, message)
}

func internalError() error {
	return NewLedgerError(ErrInternal, http.StatusInternalServerError, "db error")
}
