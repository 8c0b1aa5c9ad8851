package model

import "time"

// 操作履歴（追記のみ）。
// 順番はIDの昇順で決まる。
type HistoryEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Text      string    `gorm:"type:text;not null;column:history" json:"text"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// テーブル名はhistories
func (HistoryEntry) TableName() string { return "histories" }
