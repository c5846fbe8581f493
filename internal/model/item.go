package model

import "time"

// Item: запись каталога.
type Item struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"not null"`
	Author      string `gorm:"not null"`
	Description string
	Category    string `gorm:"index"`

	// Ссылки на файлы в хранилище; nil: файла нет
	ImagePath    *string
	DocumentPath *string

	CreatedBy int64     `gorm:"index"` // users.id, без внешнего ключа
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Rating: оценка пользователя; одна на пару (пользователь, запись).
type Rating struct {
	ID      int64 `gorm:"primaryKey;autoIncrement"`
	ItemID  int64 `gorm:"not null;uniqueIndex:idx_ratings_item_user"`
	UserID  int64 `gorm:"not null;uniqueIndex:idx_ratings_item_user"`
	Score   int   `gorm:"not null;check:chk_ratings_score,score >= 1 AND score <= 5"`
	Comment string
	RatedAt time.Time `gorm:"not null;index"`
}

// Favorite: запись в избранном пользователя.
type Favorite struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	UserID  int64     `gorm:"not null;uniqueIndex:idx_favorites_user_item"`
	ItemID  int64     `gorm:"not null;uniqueIndex:idx_favorites_user_item;index"`
	AddedAt time.Time `gorm:"autoCreateTime"`
}

// RatingView: оценка вместе с данными автора.
type RatingView struct {
	Rating
	Username  string
	FirstName string
	LastName  string
}

// Все модели, участвующие в миграции.
func All() []any {
	return []any{&User{}, &Item{}, &Rating{}, &Favorite{}}
}
