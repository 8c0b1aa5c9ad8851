package repository

import (
	"context"
	"errors"

	"warehouse/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得・削除）だけを約束。
type ProductRepository interface {
	//名前だけで1件取得（単価は見ない）
	FindByName(ctx context.Context, name string) (model.Product, error)

	//在庫中の商品一覧（ID順）
	List(ctx context.Context) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	UpdateQuantity(ctx context.Context, productID int64, quantity int64) error

	//quantityが0になった行の削除
	Delete(ctx context.Context, productID int64) error
}
