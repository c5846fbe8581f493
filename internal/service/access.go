package service

import (
	"CatalogBot/internal/model"
	"CatalogBot/internal/repo"
	"context"

	"go.uber.org/zap"
)

// AccessService определяет роль вызывающего.
type AccessService struct {
	users  repo.UserRepository
	logger *zap.SugaredLogger
}

func NewAccessService(users repo.UserRepository, logger *zap.SugaredLogger) *AccessService {
	return &AccessService{users: users, logger: logger}
}

// RoleOf возвращает роль пользователя; неизвестный пользователь считается обычным.
func (a *AccessService) RoleOf(ctx context.Context, userID int64) model.Role {
	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if !isNotFound(err) {
			a.logger.Errorw("role lookup failed", "user_id", userID, "error", err)
		}
		return model.RoleUser
	}
	if !u.Role.Valid() {
		return model.RoleUser
	}
	return u.Role
}

// Allowed сообщает, достаточно ли роли пользователя для действия уровня min.
func (a *AccessService) Allowed(ctx context.Context, userID int64, min model.Role) bool {
	return a.RoleOf(ctx, userID).AtLeast(min)
}
