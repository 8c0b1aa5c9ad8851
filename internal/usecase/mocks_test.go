package usecase_test

import (
	"context"
	"strings"
	"testing"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	accounts repo.AccountRepository
	products repo.ProductRepository
}

func (r *TxReposMock) Accounts() repo.AccountRepository { return r.accounts }
func (r *TxReposMock) Products() repo.ProductRepository { return r.products }

// =====================
// Repository mocks
// =====================

type AccountRepoMock struct{ mock.Mock }

func (m *AccountRepoMock) EnsureSingleton(ctx context.Context) (model.Account, error) {
	panic("not used in usecase tests")
}

func (m *AccountRepoMock) Get(ctx context.Context) (model.Account, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).(model.Account)
	return a, args.Error(1)
}

func (m *AccountRepoMock) GetForUpdate(ctx context.Context) (model.Account, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).(model.Account)
	return a, args.Error(1)
}

func (m *AccountRepoMock) Update(ctx context.Context, a model.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByName(ctx context.Context, name string) (model.Product, error) {
	args := m.Called(ctx, name)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) UpdateQuantity(ctx context.Context, productID int64, quantity int64) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type HistoryRepoMock struct{ mock.Mock }

func (m *HistoryRepoMock) Create(ctx context.Context, entry model.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *HistoryRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *HistoryRepoMock) ListAll(ctx context.Context) ([]model.HistoryEntry, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.HistoryEntry)
	return items, args.Error(1)
}

func (m *HistoryRepoMock) Slice(ctx context.Context, offset int, limit int) ([]model.HistoryEntry, error) {
	args := m.Called(ctx, offset, limit)
	items, _ := args.Get(0).([]model.HistoryEntry)
	return items, args.Error(1)
}

type RecorderMock struct{ mock.Mock }

func (m *RecorderMock) Record(ctx context.Context, line string) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

// =====================
// Helpers
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s got %s", want, got)
}
