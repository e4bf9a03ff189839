package http

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	corsMaxAge      = 12 * time.Hour
	corsAnyOrigin   = "*"
	requestIDHeader = "X-Request-Id"
)

// createCORSMiddleware returns nil when CORS is disabled or CORS_ALLOW_ORIGINS is empty.
// A "*" entry allows every origin but drops credentialed requests, since browsers refuse
// to combine the two.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOriginsStr)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but CORS_ALLOW_ORIGINS is empty, CORS will not be applied")
		return nil
	}

	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowHeaders:  []string{"Authorization", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        corsMaxAge,
	}

	if slices.Contains(origins, corsAnyOrigin) {
		logger.Warn("CORS allows any origin, credentialed requests are disabled")
		cfg.AllowAllOrigins = true
		return cors.New(cfg)
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cors.New(cfg)
}

func parseOrigins(originsStr string) []string {
	var origins []string
	for part := range strings.SplitSeq(originsStr, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
