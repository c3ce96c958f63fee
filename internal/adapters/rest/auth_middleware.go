package rest

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

// HeaderAuthMiddleware - middleware для извлечения userID из заголовка, выставленного шлюзом.
func HeaderAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			WriteJSONError(w, http.StatusUnauthorized, "X-User-ID header is missing")
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid X-User-ID header format")
			return
		}

		ctx := contextkeys.ContextWithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// JWTAuthMiddleware проверяет Bearer-токен и кладет владельца из токена в контекст.
func JWTAuthMiddleware(verifier port.TokenVerifierPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"component": "JWTAuthMiddleware"})

			authHeader := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				WriteJSONError(w, http.StatusUnauthorized, "Authorization header is missing or malformed")
				return
			}

			claims, err := verifier.Verify(r.Context(), strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Token verification failed", port.Fields{"error": err.Error()})
				WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := contextkeys.ContextWithUserID(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
