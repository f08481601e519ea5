package rest

import (
	"net/http"

	"github.com/beyondeth/shop/internal/constants"
	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/port"

	"github.com/google/uuid"
)

const sessionCookieMaxAge = 30 * 24 * 60 * 60

// SessionMiddleware привязывает запрос к браузерной сессии витрины
// и пробрасывает токен участника платформы из cookie.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionID := ""
		if c, err := r.Cookie(constants.SessionCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sessionID = c.Value
			}
		}
		if sessionID == "" {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     constants.SessionCookie,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   sessionCookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx = contextkeys.ContextWithSessionID(ctx, sessionID)

		// токен не проверяется здесь, это делает платформа
		if c, err := r.Cookie(constants.MemberCookie); err == nil && c.Value != "" {
			ctx = contextkeys.ContextWithMemberToken(ctx, c.Value)
		}

		logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"session_id": sessionID})
		ctx = contextkeys.ContextWithLogger(ctx, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
