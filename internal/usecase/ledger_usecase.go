package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	OperationAdd      = "add"
	OperationSubtract = "subtract"
)

// 履歴の書き込み口（history.Recorder）
type HistoryRecorder interface {
	Record(ctx context.Context, line string) error
}

// 残高・仕入れ・販売をまとめる
type LedgerUsecase struct {
	//更新系は1本ずつ（口座は1つしかない）
	mu sync.Mutex

	tx       repo.TransactionManager
	accounts repo.AccountRepository
	products repo.ProductRepository
	history  HistoryRecorder
}

// DI
func NewLedgerUsecase(
	tx repo.TransactionManager,
	accounts repo.AccountRepository,
	products repo.ProductRepository,
	history HistoryRecorder,
) *LedgerUsecase {
	return &LedgerUsecase{
		tx:       tx,
		accounts: accounts,
		products: products,
		history:  history,
	}
}

// POST /change_balance の入力
type AdjustBalanceInput struct {
	Amount    decimal.Decimal
	Operation string
}

// POST /purchase の入力
type PurchaseInput struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// POST /sale の入力（単価は呼び出し側が決める）
type SaleInput struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// 成功時の結果
type LedgerResult struct {
	Message string
	Account model.Account
}

func (u *LedgerUsecase) AdjustBalance(ctx context.Context, in AdjustBalanceInput) (LedgerResult, error) {
	if !in.Amount.IsPositive() {
		return LedgerResult{}, invalidInput("Error: Amount must be greater than 0!")
	}
	if !model.FitsAmountScale(in.Amount) {
		return LedgerResult{}, invalidInput(fmt.Sprintf("Error: Amount must have at most %d decimal places!", model.AmountScale))
	}

	op := strings.TrimSpace(in.Operation)
	switch op {
	case OperationAdd, OperationSubtract:
	default:
		return LedgerResult{}, NewLedgerError(ErrInvalidOperation, http.StatusBadRequest, "Error: Invalid operation!")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	var after model.Account
	var line, message string

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		a, err := r.Accounts().GetForUpdate(ctx)
		if err != nil {
			return u.dbError("adjust_balance", err)
		}

		if op == OperationAdd {
			a.Balance = a.Balance.Add(in.Amount)
			line = fmt.Sprintf("Added %s to account. Balance: %s", in.Amount, a.Balance)
			message = fmt.Sprintf("Success: Added %s to account. Account Balance: %s", in.Amount, a.Balance)
		} else {
			//残高がマイナスになるなら何もしない
			if a.Balance.Sub(in.Amount).IsNegative() {
				return NewLedgerError(ErrInsufficientFunds, http.StatusUnprocessableEntity, "Error: Insufficient balance!")
			}
			a.Balance = a.Balance.Sub(in.Amount)
			line = fmt.Sprintf("Subtract %s to account. Balance: %s", in.Amount, a.Balance)
			message = fmt.Sprintf("Success: Subtracted %s from account. Account Balance: %s", in.Amount, a.Balance)
		}

		if err := r.Accounts().Update(ctx, a); err != nil {
			return u.dbError("adjust_balance", err)
		}
		after = a
		return nil
	})
	if err != nil {
		return LedgerResult{}, u.normalize("adjust_balance", err)
	}

	u.recordHistory(ctx, line)
	return LedgerResult{Message: message, Account: after}, nil
}

func (u *LedgerUsecase) RecordPurchase(ctx context.Context, in PurchaseInput) (LedgerResult, error) {
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return LedgerResult{}, invalidInput("Purchase error: Product name required!")
	}
	if in.Quantity <= 0 {
		return LedgerResult{}, invalidInput("Purchase error: Number of pieces must be greater than 0!")
	}
	if !in.UnitPrice.IsPositive() {
		return LedgerResult{}, invalidInput("Purchase error: Unit price must be greater than 0!")
	}
	//保存される値と同じ桁でないと同単価の判定がずれる
	if !model.FitsAmountScale(in.UnitPrice) {
		return LedgerResult{}, invalidInput(fmt.Sprintf("Purchase error: Unit price must have at most %d decimal places!", model.AmountScale))
	}

	totalCost := in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity))

	u.mu.Lock()
	defer u.mu.Unlock()

	var after model.Account
	var line, message string

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		a, err := r.Accounts().GetForUpdate(ctx)
		if err != nil {
			return u.dbError("purchase", err)
		}

		//名前だけで探す（単価は見ない）
		existing, err := r.Products().FindByName(ctx, name)
		found := true
		if errors.Is(err, repo.ErrNotFound) {
			found = false
		} else if err != nil {
			return u.dbError("purchase", err)
		}

		//同名・別単価の在庫が残っているなら不可
		if found && !existing.Price.Equal(in.UnitPrice) && existing.Quantity > 0 {
			return NewLedgerError(ErrProductPriceConflict, http.StatusConflict,
				fmt.Sprintf("Purchase error: %s already exists with different prices and quantities", name))
		}

		if a.Balance.Sub(totalCost).IsNegative() {
			return NewLedgerError(ErrInsufficientFunds, http.StatusUnprocessableEntity, "Purchase error: Insufficient balance!")
		}

		a.Balance = a.Balance.Sub(totalCost)

		//同名・同単価なら数量を足す、なければ新規
		if found && existing.Price.Equal(in.UnitPrice) {
			if err := r.Products().UpdateQuantity(ctx, existing.ID, existing.Quantity+in.Quantity); err != nil {
				return u.dbError("purchase", err)
			}
		} else {
			if _, err := r.Products().Create(ctx, model.Product{
				Name:     name,
				Quantity: in.Quantity,
				Price:    in.UnitPrice,
			}); err != nil {
				return u.dbError("purchase", err)
			}
		}

		a.Stock += in.Quantity
		if err := r.Accounts().Update(ctx, a); err != nil {
			return u.dbError("purchase", err)
		}

		line = fmt.Sprintf("Purchased %d of %s with %s. Balance: %s", in.Quantity, name, totalCost, a.Balance)
		message = fmt.Sprintf("Successful purchase %d of %s with %s. Balance: %s", in.Quantity, name, totalCost, a.Balance)
		after = a
		return nil
	})
	if err != nil {
		return LedgerResult{}, u.normalize("purchase", err)
	}

	u.recordHistory(ctx, line)
	return LedgerResult{Message: message, Account: after}, nil
}

func (u *LedgerUsecase) RecordSale(ctx context.Context, in SaleInput) (LedgerResult, error) {
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return LedgerResult{}, invalidInput("Sales error: Product name required!")
	}
	if in.Quantity <= 0 {
		return LedgerResult{}, invalidInput("Sales error: Number of pieces must be greater than 0!")
	}
	//0円の販売は可（残高は減らない）
	if in.UnitPrice.IsNegative() {
		return LedgerResult{}, invalidInput("Sales error: Unit price must not be negative!")
	}
	if !model.FitsAmountScale(in.UnitPrice) {
		return LedgerResult{}, invalidInput(fmt.Sprintf("Sales error: Unit price must have at most %d decimal places!", model.AmountScale))
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	var after model.Account
	var line, message string

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		a, err := r.Accounts().GetForUpdate(ctx)
		if err != nil {
			return u.dbError("sale", err)
		}

		p, err := r.Products().FindByName(ctx, name)
		if errors.Is(err, repo.ErrNotFound) {
			return NewLedgerError(ErrProductNotFound, http.StatusNotFound,
				fmt.Sprintf("Sales error: %s is not in the warehouse.", name))
		}
		if err != nil {
			return u.dbError("sale", err)
		}

		if p.Quantity < in.Quantity {
			return NewLedgerError(ErrInsufficientStock, http.StatusUnprocessableEntity,
				fmt.Sprintf("Sales error: Not enough quantity for %s. Only %d left.", name, p.Quantity))
		}

		//売値は入力値（仕入れ単価とは別）
		totalRevenue := in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity))
		a.Balance = a.Balance.Add(totalRevenue)
		a.Stock -= in.Quantity

		//0になったら行ごと削除
		remaining := p.Quantity - in.Quantity
		if remaining == 0 {
			if err := r.Products().Delete(ctx, p.ID); err != nil {
				return u.dbError("sale", err)
			}
		} else {
			if err := r.Products().UpdateQuantity(ctx, p.ID, remaining); err != nil {
				return u.dbError("sale", err)
			}
		}

		if err := r.Accounts().Update(ctx, a); err != nil {
			return u.dbError("sale", err)
		}

		line = fmt.Sprintf("Sold %d of %s with %s. Balance: %s", in.Quantity, name, totalRevenue, a.Balance)
		message = fmt.Sprintf("Successful sale %d of %s with %s. Balance: %s", in.Quantity, name, totalRevenue, a.Balance)
		after = a
		return nil
	})
	if err != nil {
		return LedgerResult{}, u.normalize("sale", err)
	}

	u.recordHistory(ctx, line)
	return LedgerResult{Message: message, Account: after}, nil
}

// GET / の表示用（残高と在庫合計）
func (u *LedgerUsecase) Overview(ctx context.Context) (model.Account, error) {
	a, err := u.accounts.Get(ctx)
	if err != nil {
		return model.Account{}, u.dbError("overview", err)
	}
	return a, nil
}

// 販売フォームの商品リスト
func (u *LedgerUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := u.products.List(ctx)
	if err != nil {
		return []model.Product{}, u.dbError("list_products", err)
	}
	return products, nil
}

// 両方のsinkへ書く。失敗してもコミット済みなので成功扱い
// コミット後はリクエストが切れても書き切る
func (u *LedgerUsecase) recordHistory(ctx context.Context, line string) {
	if u.history == nil {
		return
	}
	if err := u.history.Record(context.WithoutCancel(ctx), line); err != nil {
		log.Warn().Err(err).Str("line", line).Msg("history not fully recorded")
	}
}

func (u *LedgerUsecase) dbError(op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("db error")
	return internalError()
}

// LedgerError以外（commit失敗など）は500にそろえる
func (u *LedgerUsecase) normalize(op string, err error) error {
	if _, ok := AsLedgerError(err); ok {
		return err
	}
	return u.dbError(op, err)
}
