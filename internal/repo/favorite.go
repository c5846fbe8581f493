package repo

import (
	"CatalogBot/internal/model"
	"context"

	"gorm.io/gorm"
)

// FavoriteRepository: избранное пользователей.
type FavoriteRepository interface {
	// Add добавляет запись; повтор для той же пары нарушает уникальный индекс и возвращает ошибку.
	Add(ctx context.Context, userID, itemID int64) error
	// Remove удаляет все совпадающие строки и возвращает их число.
	Remove(ctx context.Context, userID, itemID int64) (int64, error)
	ListItems(ctx context.Context, userID int64) ([]model.Item, error)
}

type favoriteRepo struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Add(ctx context.Context, userID, itemID int64) error {
	return r.db.WithContext(ctx).Create(&model.Favorite{UserID: userID, ItemID: itemID}).Error
}

func (r *favoriteRepo) Remove(ctx context.Context, userID, itemID int64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&model.Favorite{})
	return tx.RowsAffected, tx.Error
}

func (r *favoriteRepo) ListItems(ctx context.Context, userID int64) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites f ON f.item_id = items.id").
		Where("f.user_id = ?", userID).
		Order("f.added_at").
		Order("f.id").
		Find(&items).Error
	return items, err
}
