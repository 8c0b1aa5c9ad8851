package repository

import (
	"context"

	"warehouse/internal/domain/model"
)

// 操作履歴の保存・一覧取得の約束。
// 更新・削除は無い。
type HistoryRepository interface {
	//履歴を1件保存
	Create(ctx context.Context, entry model.HistoryEntry) error

	//件数
	Count(ctx context.Context) (int64, error)

	//全件（挿入順）
	ListAll(ctx context.Context) ([]model.HistoryEntry, error)

	//挿入順でoffsetからlimit件
	Slice(ctx context.Context, offset int, limit int) ([]model.HistoryEntry, error)
}
