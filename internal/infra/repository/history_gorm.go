package repository

import (
	"context"

	"warehouse/internal/domain/model"
	repo "warehouse/internal/repository"

	"gorm.io/gorm"
)

type historyGormRepository struct {
	db *gorm.DB
}

func NewHistoryGormRepository(db *gorm.DB) repo.HistoryRepository {
	return &historyGormRepository{db: db}
}

func (r *historyGormRepository) Create(ctx context.Context, entry model.HistoryEntry) error {
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return err
	}
	return nil
}

func (r *historyGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.HistoryEntry{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *historyGormRepository) ListAll(ctx context.Context) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	if err := r.db.WithContext(ctx).Order("id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *historyGormRepository) Slice(ctx context.Context, offset int, limit int) ([]model.HistoryEntry, error) {
	//古い順
	q := r.db.WithContext(ctx).Model(&model.HistoryEntry{}).Order("id asc")

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return []model.HistoryEntry{}, nil
	}
	q = q.Offset(offset).Limit(limit)

	var entries []model.HistoryEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
