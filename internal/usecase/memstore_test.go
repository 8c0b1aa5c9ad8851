package usecase_test

import (
	"context"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"

	"github.com/shopspring/decimal"
)

// ── in-memory store（Txは失敗時にスナップショットへ戻す、金額はnumeric(18,4)と同じく丸める） ──

type memStore struct {
	account  model.Account
	products []model.Product
	nextID   int64
	history  []model.HistoryEntry
}

func newMemStore(balance string) *memStore {
	return &memStore{
		account: model.Account{ID: 1, Balance: decimal.RequireFromString(balance)},
		nextID:  1,
	}
}

func (s *memStore) Accounts() repo.AccountRepository { return memAccounts{s} }
func (s *memStore) Products() repo.ProductRepository { return memProducts{s} }
func (s *memStore) History() repo.HistoryRepository  { return memHistory{s} }

func (s *memStore) WithinTx(_ context.Context, fn func(r repo.TxRepos) error) error {
	acc := s.account
	prods := append([]model.Product(nil), s.products...)
	if err := fn(s); err != nil {
		s.account = acc
		s.products = prods
		return err
	}
	return nil
}

func (s *memStore) sumQuantity() int64 {
	var n int64
	for _, p := range s.products {
		n += p.Quantity
	}
	return n
}

type memAccounts struct{ s *memStore }

func (r memAccounts) EnsureSingleton(_ context.Context) (model.Account, error) {
	return r.s.account, nil
}

func (r memAccounts) Get(_ context.Context) (model.Account, error) { return r.s.account, nil }

func (r memAccounts) GetForUpdate(_ context.Context) (model.Account, error) {
	return r.s.account, nil
}

func (r memAccounts) Update(_ context.Context, a model.Account) error {
	a.Balance = a.Balance.Round(model.AmountScale)
	r.s.account = a
	return nil
}

type memProducts struct{ s *memStore }

func (r memProducts) FindByName(_ context.Context, name string) (model.Product, error) {
	for _, p := range r.s.products {
		if p.Name == name {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

func (r memProducts) List(_ context.Context) ([]model.Product, error) {
	return append([]model.Product{}, r.s.products...), nil
}

func (r memProducts) Create(_ context.Context, p model.Product) (model.Product, error) {
	p.ID = r.s.nextID
	p.Price = p.Price.Round(model.AmountScale)
	r.s.nextID++
	r.s.products = append(r.s.products, p)
	return p, nil
}

func (r memProducts) UpdateQuantity(_ context.Context, productID int64, quantity int64) error {
	for i := range r.s.products {
		if r.s.products[i].ID == productID {
			r.s.products[i].Quantity = quantity
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r memProducts) Delete(_ context.Context, productID int64) error {
	for i := range r.s.products {
		if r.s.products[i].ID == productID {
			r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

type memHistory struct{ s *memStore }

func (r memHistory) Create(_ context.Context, e model.HistoryEntry) error {
	e.ID = int64(len(r.s.history) + 1)
	r.s.history = append(r.s.history, e)
	return nil
}

func (r memHistory) Count(_ context.Context) (int64, error) { return int64(len(r.s.history)), nil }

func (r memHistory) ListAll(_ context.Context) ([]model.HistoryEntry, error) {
	return append([]model.HistoryEntry{}, r.s.history...), nil
}

func (r memHistory) Slice(_ context.Context, offset int, limit int) ([]model.HistoryEntry, error) {
	end := offset + limit
	if end > len(r.s.history) {
		end = len(r.s.history)
	}
	if offset >= end {
		return []model.HistoryEntry{}, nil
	}
	return append([]model.HistoryEntry{}, r.s.history[offset:end]...), nil
}

func (s *memStore) historyTexts() []string {
	out := make([]string, 0, len(s.history))
	for _, e := range s.history {
		out = append(out, e.Text)
	}
	return out
}
