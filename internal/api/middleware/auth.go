package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/lashroom/scheduling-service/internal/api/handlers"
)

const masterTokenHeader = "X-Master-Token"

const msgUnauthorized = "требуется токен мастера"

// Auth проверяет токен мастера в заголовке X-Master-Token.
// Защищает административные операции: управление расписанием,
// подтверждение и завершение записей, настройки студии.
func Auth(masterToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(masterTokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(masterToken)) != 1 {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
