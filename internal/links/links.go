// Package links выдаёт подписанные ссылки на скачивание файлов каталога.
package links

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	issuer = "catalogbot"
	// FilesPath: префикс HTTP-маршрута скачивания.
	FilesPath = "/files/"
)

// ErrInvalidToken: подпись неверна, срок истёк или токен повреждён.
var ErrInvalidToken = errors.New("invalid download token")

// Signer подписывает ссылку на файл HS256-токеном с ограниченным сроком.
type Signer struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

func NewSigner(secret, baseURL string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("link secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("link ttl must be positive")
	}
	return &Signer{
		secret:  []byte(secret),
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

// Sign возвращает токен, в subject которого лежит ссылка на файл в хранилище.
func (s *Signer) Sign(ref string) (string, error) {
	if ref == "" {
		return "", errors.New("empty asset ref")
	}
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   ref,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign link: %w", err)
	}
	return token, nil
}

// Link возвращает полный адрес для скачивания.
func (s *Signer) Link(ref string) (string, error) {
	token, err := s.Sign(ref)
	if err != nil {
		return "", err
	}
	return s.baseURL + FilesPath + url.PathEscape(token), nil
}

// Verify проверяет токен и возвращает ссылку на файл.
func (s *Signer) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}
