package repository

import (
	"context"
	"errors"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountGormRepository struct {
	db *gorm.DB
}

// DI
func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

// 口座が無ければ残高0・在庫0で作成
func (r *AccountGormRepository) EnsureSingleton(ctx context.Context) (model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).Order("id asc").First(&a).Error
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Account{}, err
	}

	a = model.Account{Balance: decimal.Zero, Stock: 0}
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return model.Account{}, err
	}
	return a, nil
}

// 最初の1行を返す
func (r *AccountGormRepository) Get(ctx context.Context) (model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).Order("id asc").First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Account{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Account{}, err
	}
	return a, nil
}

// SELECT ... FOR UPDATE（Tx内でのみ意味がある）
func (r *AccountGormRepository) GetForUpdate(ctx context.Context) (model.Account, error) {
	var a model.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id asc").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Account{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Account{}, err
	}
	return a, nil
}

// 残高と在庫合計の更新
func (r *AccountGormRepository) Update(ctx context.Context, a model.Account) error {
	res := r.db.WithContext(ctx).Model(&model.Account{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
		"balance": a.Balance,
		"stock":   a.Stock,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
