package repository

import (
	"context"

	"warehouse/internal/domain/model"
)

// 口座（シングルトン）の保存・取得の約束。
type AccountRepository interface {
	//無ければ初期値で作成して返す（起動時に1回）
	EnsureSingleton(ctx context.Context) (model.Account, error)

	//口座を1件取得
	Get(ctx context.Context) (model.Account, error)

	//行ロック付きで取得（Tx内で使う）
	GetForUpdate(ctx context.Context) (model.Account, error)

	//残高と在庫合計を更新
	Update(ctx context.Context, account model.Account) error
}
