package handler

import (
	"context"
	"net/http"
	"strings"

	"warehouse/internal/domain/model"
	"warehouse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// *usecase.LedgerUsecase
type LedgerService interface {
	AdjustBalance(ctx context.Context, in usecase.AdjustBalanceInput) (usecase.LedgerResult, error)
	RecordPurchase(ctx context.Context, in usecase.PurchaseInput) (usecase.LedgerResult, error)
	RecordSale(ctx context.Context, in usecase.SaleInput) (usecase.LedgerResult, error)
	Overview(ctx context.Context) (model.Account, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
}

type balanceForm struct {
	Amount    string `form:"amount" validate:"required,decimal_gt0"`
	Operation string `form:"operation"`
}

type purchaseForm struct {
	ProductName string `form:"product_name" validate:"required"`
	Quantity    int64  `form:"number_of_pieces" validate:"gt=0"`
	UnitPrice   string `form:"unit_price" validate:"required,decimal_gt0"`
}

type saleForm struct {
	ProductName string `form:"sale_list" validate:"required"`
	Quantity    int64  `form:"number_of_pieces" validate:"gt=0"`
	UnitPrice   string `form:"unit_price" validate:"required,decimal_gte0"`
}

// 残高・仕入れ・販売の画面
type LedgerHandler struct {
	uc LedgerService
}

// DI
func NewLedgerHandler(uc LedgerService) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

func (h *LedgerHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.index)

	e.GET("/balance_change_form.html", h.balanceForm)
	e.POST("/change_balance", h.changeBalance)

	e.GET("/purchase_form.html", h.purchaseForm)
	e.POST("/purchase", h.purchase)

	e.GET("/sale_form.html", h.saleForm)
	e.POST("/sale", h.sale)
}

func (h *LedgerHandler) index(c echo.Context) error {
	a, err := h.uc.Overview(c.Request().Context())
	if err != nil {
		return renderError(c, tmplIndex, page{}, err)
	}
	return c.Render(http.StatusOK, tmplIndex, page{StockLevel: a.Stock, Balance: a.Balance})
}

func (h *LedgerHandler) balanceForm(c echo.Context) error {
	return c.Render(http.StatusOK, tmplBalance, page{})
}

func (h *LedgerHandler) changeBalance(c echo.Context) error {
	var f balanceForm
	if err := bindForm(c, &f); err != nil {
		return renderInvalidInput(c, tmplBalance, page{}, err)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil {
		return renderInvalidInput(c, tmplBalance, page{}, err)
	}

	out, err := h.uc.AdjustBalance(c.Request().Context(), usecase.AdjustBalanceInput{
		Amount:    amount,
		Operation: f.Operation,
	})
	if err != nil {
		return renderError(c, tmplBalance, page{}, err)
	}
	return c.Render(http.StatusOK, tmplBalance, page{Message: out.Message})
}

func (h *LedgerHandler) purchaseForm(c echo.Context) error {
	return c.Render(http.StatusOK, tmplPurchase, page{})
}

func (h *LedgerHandler) purchase(c echo.Context) error {
	var f purchaseForm
	if err := bindForm(c, &f); err != nil {
		return renderInvalidInput(c, tmplPurchase, page{}, err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(f.UnitPrice))
	if err != nil {
		return renderInvalidInput(c, tmplPurchase, page{}, err)
	}

	out, err := h.uc.RecordPurchase(c.Request().Context(), usecase.PurchaseInput{
		ProductName: f.ProductName,
		Quantity:    f.Quantity,
		UnitPrice:   price,
	})
	if err != nil {
		return renderError(c, tmplPurchase, page{}, err)
	}
	return c.Render(http.StatusOK, tmplPurchase, page{Message: out.Message})
}

func (h *LedgerHandler) saleForm(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return renderError(c, tmplSale, page{}, err)
	}
	return c.Render(http.StatusOK, tmplSale, page{Products: products})
}

func (h *LedgerHandler) sale(c echo.Context) error {
	ctx := c.Request().Context()

	//商品リストは販売前のものを出す
	products, err := h.uc.ListProducts(ctx)
	if err != nil {
		return renderError(c, tmplSale, page{}, err)
	}
	data := page{Products: products}

	var f saleForm
	if err := bindForm(c, &f); err != nil {
		return renderInvalidInput(c, tmplSale, data, err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(f.UnitPrice))
	if err != nil {
		return renderInvalidInput(c, tmplSale, data, err)
	}

	out, err := h.uc.RecordSale(ctx, usecase.SaleInput{
		ProductName: f.ProductName,
		Quantity:    f.Quantity,
		UnitPrice:   price,
	})
	if err != nil {
		return renderError(c, tmplSale, data, err)
	}
	data.Message = out.Message
	return c.Render(http.StatusOK, tmplSale, data)
}
