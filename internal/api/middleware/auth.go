package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mentorguru/MG-BookingService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

const (
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
	msgMissingRole   = "отсутствует заголовок X-User-Role"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth извлекает идентификацию пользователя из заголовков запроса
// Аутентификацию выполняет вышестоящий шлюз, сервис доверяет заголовкам
// X-User-ID и X-User-Role
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := r.Header.Get("X-User-ID")
			if userIDStr == "" {
				logger.Warn("Auth: missing X-User-ID header, path=%s", r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			userID, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("Auth: invalid X-User-ID header=%q, path=%s", userIDStr, r.URL.Path)
				handlers.RespondUnauthorized(w, msgInvalidUserID)
				return
			}

			role := r.Header.Get("X-User-Role")
			if role == "" {
				logger.Warn("Auth: missing X-User-Role header, path=%s", r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingRole)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, userRoleKey, role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetUserRole возвращает роль пользователя из контекста запроса
func GetUserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(userRoleKey).(string)
	return role, ok
}
