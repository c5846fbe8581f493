package service

import (
	"CatalogBot/internal/model"
	"CatalogBot/internal/repo"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TopItemsLimit: размер рейтинга на экране статистики.
const TopItemsLimit = 5

// AssetRemover удаляет файл по сохранённой ссылке.
type AssetRemover interface {
	Remove(ctx context.Context, ref string) error
}

// NewItem: данные для создания записи. Пустые пути означают отсутствие файла.
type NewItem struct {
	Title        string
	Author       string
	Description  string
	Category     string
	ImagePath    string
	DocumentPath string
	CreatedBy    int64
}

// CatalogService реализует операции каталога.
// Изменяющие методы не возвращают ошибок: сбой движка логируется, вызывающий получает false.
// Читающие методы при промахе возвращают пустой результат.
type CatalogService struct {
	users     repo.UserRepository
	items     repo.ItemRepository
	ratings   repo.RatingRepository
	favorites repo.FavoriteRepository
	stats     repo.StatsRepository
	assets    AssetRemover
	logger    *zap.SugaredLogger
}

// Repos: набор репозиториев каталога.
type Repos struct {
	Users     repo.UserRepository
	Items     repo.ItemRepository
	Ratings   repo.RatingRepository
	Favorites repo.FavoriteRepository
	Stats     repo.StatsRepository
}

// NewRepos создаёт все репозитории поверх одного подключения.
func NewRepos(db *gorm.DB) Repos {
	return Repos{
		Users:     repo.NewUserRepository(db),
		Items:     repo.NewItemRepository(db),
		Ratings:   repo.NewRatingRepository(db),
		Favorites: repo.NewFavoriteRepository(db),
		Stats:     repo.NewStatsRepository(db),
	}
}

func NewCatalogService(r Repos, assets AssetRemover, logger *zap.SugaredLogger) *CatalogService {
	return &CatalogService{
		users:     r.Users,
		items:     r.Items,
		ratings:   r.Ratings,
		favorites: r.Favorites,
		stats:     r.Stats,
		assets:    assets,
		logger:    logger,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// LookupItem возвращает запись или nil.
func (s *CatalogService) LookupItem(ctx context.Context, id int64) *model.Item {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		if !isNotFound(err) {
			s.logger.Errorw("lookup item failed", "item_id", id, "error", err)
		}
		return nil
	}
	return it
}

func (s *CatalogService) SearchItems(ctx context.Context, query string) []model.Item {
	items, err := s.items.Search(ctx, query)
	if err != nil {
		s.logger.Errorw("search failed", "query", query, "error", err)
		return nil
	}
	return items
}

func (s *CatalogService) ItemsByCategory(ctx context.Context, category string) []model.Item {
	items, err := s.items.ListByCategory(ctx, category)
	if err != nil {
		s.logger.Errorw("list by category failed", "category", category, "error", err)
		return nil
	}
	return items
}

func (s *CatalogService) Categories(ctx context.Context) []string {
	cats, err := s.items.Categories(ctx)
	if err != nil {
		s.logger.Errorw("list categories failed", "error", err)
		return nil
	}
	return cats
}

func (s *CatalogService) FavoritesOf(ctx context.Context, userID int64) []model.Item {
	items, err := s.favorites.ListItems(ctx, userID)
	if err != nil {
		s.logger.Errorw("list favorites failed", "user_id", userID, "error", err)
		return nil
	}
	return items
}

// AddFavorite возвращает false и при повторном добавлении, и при сбое.
func (s *CatalogService) AddFavorite(ctx context.Context, userID, itemID int64) bool {
	if err := s.favorites.Add(ctx, userID, itemID); err != nil {
		s.logger.Warnw("add favorite failed", "user_id", userID, "item_id", itemID, "error", err)
		return false
	}
	return true
}

// RemoveFavorite успешен и тогда, когда удалять было нечего.
func (s *CatalogService) RemoveFavorite(ctx context.Context, userID, itemID int64) bool {
	if _, err := s.favorites.Remove(ctx, userID, itemID); err != nil {
		s.logger.Errorw("remove favorite failed", "user_id", userID, "item_id", itemID, "error", err)
		return false
	}
	return true
}

// Rate создаёт или перезаписывает оценку пользователя.
func (s *CatalogService) Rate(ctx context.Context, userID, itemID int64, score int, comment string) bool {
	if score < 1 || score > 5 {
		s.logger.Warnw("rate: score out of range", "user_id", userID, "item_id", itemID, "score", score)
		return false
	}
	err := s.ratings.Upsert(ctx, &model.Rating{
		ItemID:  itemID,
		UserID:  userID,
		Score:   score,
		Comment: comment,
		RatedAt: time.Now().UTC(),
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warnw("rate: item not found", "user_id", userID, "item_id", itemID)
		return false
	}
	if err != nil {
		s.logger.Errorw("rate failed", "user_id", userID, "item_id", itemID, "error", err)
		return false
	}
	return true
}

func (s *CatalogService) RatingsOf(ctx context.Context, itemID int64) []model.RatingView {
	list, err := s.ratings.ListByItem(ctx, itemID)
	if err != nil {
		s.logger.Errorw("list ratings failed", "item_id", itemID, "error", err)
		return nil
	}
	return list
}

// RatingSummary возвращает среднюю оценку (nil без оценок) и число оценок.
func (s *CatalogService) RatingSummary(ctx context.Context, itemID int64) (*float64, int64) {
	avg, n, err := s.ratings.Summary(ctx, itemID)
	if err != nil {
		s.logger.Errorw("rating summary failed", "item_id", itemID, "error", err)
		return nil, 0
	}
	return avg, n
}

// AddItem сохраняет запись. При сбое загруженные для неё файлы удаляются.
func (s *CatalogService) AddItem(ctx context.Context, in NewItem) (int64, bool) {
	it := model.Item{
		Title:        in.Title,
		Author:       in.Author,
		Description:  in.Description,
		Category:     in.Category,
		ImagePath:    optional(in.ImagePath),
		DocumentPath: optional(in.DocumentPath),
		CreatedBy:    in.CreatedBy,
	}
	if in.Title == "" || in.Author == "" {
		s.logger.Warnw("add item: title and author are required", "user_id", in.CreatedBy)
		s.discard(ctx, in.ImagePath, in.DocumentPath)
		return 0, false
	}
	if err := s.items.Create(ctx, &it); err != nil {
		s.logger.Errorw("add item failed", "user_id", in.CreatedBy, "error", err)
		s.discard(ctx, in.ImagePath, in.DocumentPath)
		return 0, false
	}
	s.logger.Infow("item added", "item_id", it.ID, "user_id", in.CreatedBy)
	return it.ID, true
}

// UpdateItem применяет изменения; nil-поля сохраняют прежние значения.
// Заменённые файлы удаляются после фиксации, новые удаляются при сбое.
func (s *CatalogService) UpdateItem(ctx context.Context, id int64, ch repo.ItemChanges) bool {
	if (ch.Title != nil && *ch.Title == "") || (ch.Author != nil && *ch.Author == "") {
		s.logger.Warnw("update item: title and author cannot be empty", "item_id", id)
		s.discard(ctx, deref(ch.ImagePath), deref(ch.DocumentPath))
		return false
	}
	before, err := s.items.Update(ctx, id, ch)
	if err != nil {
		if isNotFound(err) {
			s.logger.Warnw("update item: not found", "item_id", id)
		} else {
			s.logger.Errorw("update item failed", "item_id", id, "error", err)
		}
		s.discard(ctx, deref(ch.ImagePath), deref(ch.DocumentPath))
		return false
	}
	if ch.ImagePath != nil && deref(before.ImagePath) != *ch.ImagePath {
		s.discard(ctx, deref(before.ImagePath))
	}
	if ch.DocumentPath != nil && deref(before.DocumentPath) != *ch.DocumentPath {
		s.discard(ctx, deref(before.DocumentPath))
	}
	return true
}

// DeleteItem удаляет запись с оценками и избранным, затем её файлы.
// Ошибка удаления файла только логируется.
func (s *CatalogService) DeleteItem(ctx context.Context, id int64) bool {
	it, err := s.items.Delete(ctx, id)
	if err != nil {
		if isNotFound(err) {
			s.logger.Warnw("delete item: not found", "item_id", id)
		} else {
			s.logger.Errorw("delete item failed", "item_id", id, "error", err)
		}
		return false
	}
	s.discard(ctx, deref(it.ImagePath), deref(it.DocumentPath))
	s.logger.Infow("item deleted", "item_id", id)
	return true
}

// UpsertUser регистрирует пользователя при первом контакте; профиль существующего не меняется.
func (s *CatalogService) UpsertUser(ctx context.Context, u model.User) bool {
	u.Role = model.RoleUser
	created, err := s.users.CreateIfAbsent(ctx, &u)
	if err != nil {
		s.logger.Errorw("upsert user failed", "user_id", u.ID, "error", err)
		return false
	}
	if created {
		s.logger.Infow("user registered", "user_id", u.ID, "username", u.Username)
	}
	return true
}

// SetRole возвращает false, если пользователя нет или запись не удалась.
func (s *CatalogService) SetRole(ctx context.Context, userID int64, role model.Role) bool {
	ok, err := s.users.SetRole(ctx, userID, role)
	if err != nil {
		s.logger.Errorw("set role failed", "user_id", userID, "role", role, "error", err)
		return false
	}
	if ok {
		s.logger.Infow("role changed", "user_id", userID, "role", role)
	}
	return ok
}

func (s *CatalogService) UserByID(ctx context.Context, id int64) *model.User {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if !isNotFound(err) {
			s.logger.Errorw("get user failed", "user_id", id, "error", err)
		}
		return nil
	}
	return u
}

// ListUsers: все пользователи, новые первыми.
func (s *CatalogService) ListUsers(ctx context.Context) []model.User {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Errorw("list users failed", "error", err)
		return nil
	}
	return users
}

// Admins: пользователи с ролью admin (суперадмины сюда не входят).
func (s *CatalogService) Admins(ctx context.Context) []model.User {
	users, err := s.users.ListByRole(ctx, model.RoleAdmin)
	if err != nil {
		s.logger.Errorw("list admins failed", "error", err)
		return nil
	}
	return users
}

// Statistics собирает сводку; false при любом сбое.
func (s *CatalogService) Statistics(ctx context.Context) (*model.Statistics, bool) {
	var (
		st  model.Statistics
		err error
	)
	if st.TotalItems, err = s.items.Count(ctx); err != nil {
		s.logger.Errorw("statistics: count items", "error", err)
		return nil, false
	}
	if st.TotalUsers, err = s.users.Count(ctx); err != nil {
		s.logger.Errorw("statistics: count users", "error", err)
		return nil, false
	}
	if st.TotalRatings, err = s.ratings.Count(ctx); err != nil {
		s.logger.Errorw("statistics: count ratings", "error", err)
		return nil, false
	}
	if st.TopItems, err = s.stats.TopItems(ctx, TopItemsLimit); err != nil {
		s.logger.Errorw("statistics: top items", "error", err)
		return nil, false
	}
	if st.ByCategory, err = s.stats.ByCategory(ctx); err != nil {
		s.logger.Errorw("statistics: by category", "error", err)
		return nil, false
	}
	return &st, true
}

// SeedSuperadmin назначает суперадмина при первом запуске, если его ещё нет.
func (s *CatalogService) SeedSuperadmin(ctx context.Context, id int64) error {
	exists, err := s.users.ExistsWithRole(ctx, model.RoleSuperadmin)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if id == 0 {
		s.logger.Warnw("no superadmin configured; privileged commands are unavailable")
		return nil
	}
	if _, err := s.users.CreateIfAbsent(ctx, &model.User{ID: id, Role: model.RoleSuperadmin}); err != nil {
		return err
	}
	if _, err := s.users.SetRole(ctx, id, model.RoleSuperadmin); err != nil {
		return err
	}
	s.logger.Infow("superadmin seeded", "user_id", id)
	return nil
}

// discard удаляет файлы по ссылкам; ошибки только логируются.
func (s *CatalogService) discard(ctx context.Context, refs ...string) {
	if s.assets == nil {
		return
	}
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := s.assets.Remove(ctx, ref); err != nil {
			s.logger.Warnw("asset cleanup failed", "ref", ref, "error", err)
		}
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
