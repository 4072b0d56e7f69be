package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

const userIDHeader = "X-User-ID"

type ctxKey struct{}

var userIDKey ctxKey

// Auth проверяет наличие заголовка X-User-ID и кладет ID пользователя
// в контекст запроса. Проверка подписи/сессии выполняется на API gateway,
// сюда заголовок приходит уже провалидированным
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext возвращает ID пользователя, положенный Auth middleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
