package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/metrics"
)

const bearerPrefix = "Bearer "

// AuthMiddleware rejects requests that do not carry the configured bearer token.
// When auth is disabled every request passes and is counted as skipped.
func AuthMiddleware(next http.Handler, cfg config.AuthConfig, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("auth")
	want := []byte(cfg.Token)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !cfg.Enabled {
			metrics.RecordAuth(metrics.AuthSkipped, 0)
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		token, ok := bearerToken(r)
		valid := ok && subtle.ConstantTimeCompare([]byte(token), want) == 1
		outcome := metrics.AuthAccepted
		if !valid {
			outcome = metrics.AuthRejected
		}
		metrics.RecordAuth(outcome, time.Since(start))

		if !valid {
			logger.Debug("Rejected request",
				zap.String("remote_addr", r.RemoteAddr),
				zap.Bool("token_present", ok))
			w.Header().Set("WWW-Authenticate", `Bearer realm="unreal-mcp-server"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
