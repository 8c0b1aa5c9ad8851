package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 金額・単価の小数桁（numeric(18,4) と合わせる）
const AmountScale = 4

// 小数がAmountScale桁以内か
func FitsAmountScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(AmountScale))
}

// 倉庫の口座（1行だけ存在する）
// 残高と、全商品の在庫合計を持つ。
type Account struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//残高（マイナス不可）
	Balance decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0" json:"balance"`

	//在庫合計 = Σ products.quantity
	Stock int64 `gorm:"not null;default:0" json:"stock"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
