package repo

import (
	"CatalogBot/internal/model"
	"context"
	"strings"

	"gorm.io/gorm"
)

// ItemChanges: поля для частичного обновления записи; nil: оставить как есть.
type ItemChanges struct {
	Title        *string
	Author       *string
	Description  *string
	Category     *string
	ImagePath    *string
	DocumentPath *string
}

func (c ItemChanges) updates() map[string]any {
	m := map[string]any{}
	if c.Title != nil {
		m["title"] = *c.Title
	}
	if c.Author != nil {
		m["author"] = *c.Author
	}
	if c.Description != nil {
		m["description"] = *c.Description
	}
	if c.Category != nil {
		m["category"] = *c.Category
	}
	if c.ImagePath != nil {
		m["image_path"] = nullable(*c.ImagePath)
	}
	if c.DocumentPath != nil {
		m["document_path"] = nullable(*c.DocumentPath)
	}
	return m
}

// пустая ссылка хранится как NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ItemRepository: доступ к записям каталога.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	// Search ищет подстроку в названии или авторе.
	Search(ctx context.Context, query string) ([]model.Item, error)
	ListByCategory(ctx context.Context, category string) ([]model.Item, error)
	// Categories возвращает различные непустые категории по алфавиту.
	Categories(ctx context.Context) ([]string, error)
	// Update применяет изменения и возвращает состояние записи до обновления.
	Update(ctx context.Context, id int64, changes ItemChanges) (*model.Item, error)
	// Delete удаляет запись вместе с оценками и избранным; возвращает удалённую запись.
	Delete(ctx context.Context, id int64) (*model.Item, error)
	Count(ctx context.Context) (int64, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	if err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *itemRepo) Search(ctx context.Context, query string) ([]model.Item, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	var items []model.Item
	err := r.db.WithContext(ctx).
		Where(`title LIKE ? ESCAPE '\' OR author LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) ListByCategory(ctx context.Context, category string) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).Where("category = ?", category).Order("id").Find(&items).Error
	return items, err
}

func (r *itemRepo) Categories(ctx context.Context) ([]string, error) {
	var cats []string
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("category <> ''").
		Distinct("category").
		Order("category").
		Pluck("category", &cats).Error
	return cats, err
}

func (r *itemRepo) Update(ctx context.Context, id int64, changes ItemChanges) (*model.Item, error) {
	var before model.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&before, "id = ?", id).Error; err != nil {
			return err
		}
		upd := changes.updates()
		if len(upd) == 0 {
			return nil
		}
		return tx.Model(&model.Item{}).Where("id = ?", id).Updates(upd).Error
	})
	if err != nil {
		return nil, err
	}
	return &before, nil
}

func (r *itemRepo) Delete(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&it, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Item{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).Count(&n).Error
	return n, err
}
