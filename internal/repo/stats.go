package repo

import (
	"CatalogBot/internal/model"
	"context"

	"gorm.io/gorm"
)

// StatsRepository: агрегаты для экрана статистики.
type StatsRepository interface {
	// TopItems: записи по убыванию средней оценки, затем числа оценок; без оценок идут со средним NULL.
	TopItems(ctx context.Context, limit int) ([]model.ItemScore, error)
	ByCategory(ctx context.Context) ([]model.CategoryCount, error)
}

type statsRepo struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) TopItems(ctx context.Context, limit int) ([]model.ItemScore, error) {
	var out []model.ItemScore
	err := r.db.WithContext(ctx).
		Table("items AS i").
		Select("i.id AS item_id, i.title, AVG(r.score) AS avg_score, COUNT(r.id) AS ratings").
		Joins("LEFT JOIN ratings r ON r.item_id = i.id").
		Group("i.id, i.title").
		Order("COALESCE(AVG(r.score), 0) DESC").
		Order("COUNT(r.id) DESC").
		Order("i.id").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *statsRepo) ByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	var out []model.CategoryCount
	err := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Order("total DESC").
		Order("category").
		Scan(&out).Error
	return out, err
}
