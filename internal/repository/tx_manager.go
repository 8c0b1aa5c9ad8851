package repository

import "context"

// 1回の台帳操作（口座＋商品）で使うrepo
type TxRepos interface {
	Accounts() AccountRepository
	Products() ProductRepository
}

// fnがエラーを返したらロールバック、nilならcommit。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
