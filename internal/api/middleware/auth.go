package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const (
	// HeaderUserID заголовок с ID пользователя (провайдер header)
	HeaderUserID = "X-User-ID"
	// HeaderUserRole заголовок с ролью пользователя (провайдер header)
	HeaderUserRole = "X-User-Role"
)

// ErrNoIdentity возвращается, когда запрос не содержит данных о пользователе
var ErrNoIdentity = errors.New("no identity in request")

// IdentityProvider определяет текущего пользователя по запросу
type IdentityProvider interface {
	Identify(r *http.Request) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type userKey struct{}

// WithUser кладет пользователя в контекст
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser возвращает пользователя из контекста (nil если не аутентифицирован)
func GetUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey{}).(*domain.User)
	return user
}

// Auth отклоняет запросы без пользователя с 401
func Auth(provider IdentityProvider, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := provider.Identify(r)
			if err != nil || user == nil || user.UID == "" {
				log.Warn("Auth: %s %s - unauthenticated: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// HeaderIdentity провайдер для локальной разработки: доверяет X-User-ID / X-User-Role
type HeaderIdentity struct{}

// Identify читает пользователя из заголовков
func (HeaderIdentity) Identify(r *http.Request) (*domain.User, error) {
	uid := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if uid == "" {
		return nil, ErrNoIdentity
	}

	role := domain.RoleUser
	if strings.EqualFold(strings.TrimSpace(r.Header.Get(HeaderUserRole)), string(domain.RoleAdmin)) {
		role = domain.RoleAdmin
	}

	return &domain.User{UID: uid, Role: role}, nil
}
