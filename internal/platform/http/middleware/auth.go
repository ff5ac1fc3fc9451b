package middleware

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
)

func APIKeyAuth(validKey string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientKey := r.Header.Get("X-API-Key")

			if clientKey == "" || subtle.ConstantTimeCompare([]byte(clientKey), []byte(validKey)) != 1 {
				logger.Warn("rejected request without valid api key",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				http.Error(w, "Unauthorized: Invalid or missing API Key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
