package repo

import (
	"CatalogBot/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingRepository: оценки записей.
type RatingRepository interface {
	// Upsert создаёт оценку или перезаписывает score/comment/rated_at существующей.
	// Для отсутствующей записи каталога возвращает gorm.ErrRecordNotFound.
	Upsert(ctx context.Context, r *model.Rating) error
	// ListByItem возвращает оценки записи с данными авторов, новые первыми.
	ListByItem(ctx context.Context, itemID int64) ([]model.RatingView, error)
	// Summary возвращает среднюю оценку (nil, если оценок нет) и их количество.
	Summary(ctx context.Context, itemID int64) (*float64, int64, error)
	Count(ctx context.Context) (int64, error)
}

type ratingRepo struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Upsert(ctx context.Context, rt *model.Rating) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Item{}).Where("id = ?", rt.ItemID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "comment", "rated_at"}),
		}).Create(rt).Error
	})
}

func (r *ratingRepo) ListByItem(ctx context.Context, itemID int64) ([]model.RatingView, error) {
	var out []model.RatingView
	err := r.db.WithContext(ctx).
		Table("ratings AS r").
		Select("r.*, u.username, u.first_name, u.last_name").
		Joins("LEFT JOIN users u ON u.id = r.user_id").
		Where("r.item_id = ?", itemID).
		Order("r.rated_at DESC").
		Order("r.id DESC").
		Scan(&out).Error
	return out, err
}

func (r *ratingRepo) Summary(ctx context.Context, itemID int64) (*float64, int64, error) {
	var row struct {
		Avg   *float64
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("AVG(score) AS avg, COUNT(*) AS total").
		Where("item_id = ?", itemID).
		Scan(&row).Error
	if err != nil {
		return nil, 0, err
	}
	return row.Avg, row.Total, nil
}

func (r *ratingRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).Count(&n).Error
	return n, err
}
