package repository

import (
	"context"

	repo "warehouse/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	accounts repo.AccountRepository
	products repo.ProductRepository
}

func (r *txReposGorm) Accounts() repo.AccountRepository { return r.accounts }
func (r *txReposGorm) Products() repo.ProductRepository { return r.products }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			accounts: NewAccountGormRepository(tx),
			products: NewProductGormRepository(tx),
		}
		return fn(r)
	})
}
