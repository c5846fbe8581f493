package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ctxKey string

const assetRefKey ctxKey = "asset_ref"

// TokenVerifier проверяет токен ссылки и возвращает ссылку на файл.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// WithAssetToken кладёт в контекст ссылку на файл из валидного токена маршрута {token}.
// Невалидный токен не прерывает запрос: решение принимает обработчик.
func WithAssetToken(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := chi.URLParam(r, "token")
			if token == "" || v == nil {
				next.ServeHTTP(w, r)
				return
			}
			ref, err := v.Verify(token)
			if err != nil {
				sugar.Infow("download token rejected", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), assetRefKey, ref)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAssetRefFromContext возвращает ссылку на файл, проверенную WithAssetToken.
func GetAssetRefFromContext(ctx context.Context) (string, bool) {
	ref, ok := ctx.Value(assetRefKey).(string)
	return ref, ok && ref != ""
}
