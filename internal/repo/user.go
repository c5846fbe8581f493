package repo

import (
	"CatalogBot/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository: доступ к пользователям.
type UserRepository interface {
	// CreateIfAbsent вставляет пользователя, если его ещё нет. Существующие поля не трогает.
	// Возвращает created=true, если запись была создана в этой операции.
	CreateIfAbsent(ctx context.Context, user *model.User) (created bool, err error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// SetRole меняет роль; updated=false, если пользователя нет.
	SetRole(ctx context.Context, id int64, role model.Role) (updated bool, err error)
	// List возвращает всех пользователей, новые первыми.
	List(ctx context.Context) ([]model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	ExistsWithRole(ctx context.Context, role model.Role) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория пользователей.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateIfAbsent(ctx context.Context, user *model.User) (bool, error) {
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(user)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) SetRole(ctx context.Context, id int64, role model.Role) (bool, error) {
	if !role.Valid() {
		return false, errors.New("invalid role")
	}
	tx := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("role", role)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&users).Error
	return users, err
}

func (r *userRepo) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Where("role = ?", role).Order("id").Find(&users).Error
	return users, err
}

func (r *userRepo) ExistsWithRole(ctx context.Context, role model.Role) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", role).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error
	return n, err
}
