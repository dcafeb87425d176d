// middleware.go - CORS, request metrics and the outer timeout helper

package api

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bizsakhi/sakhi_ai_core/internal/common"
	"github.com/bizsakhi/sakhi_ai_core/internal/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        24 * time.Hour,
	}
	origins = cleanOrigins(origins)
	if len(origins) == 0 || containsOrigin(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// cleanOrigins trims entries and drops empty ones left by a trailing comma.
func cleanOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func containsOrigin(origins []string, target string) bool {
	for _, o := range origins {
		if o == target {
			return true
		}
	}
	return false
}

// requestMetrics observes latency per route template and status code.
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.Get().RequestDuration.
			WithLabelValues(route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// within runs work under timeout. When the deadline passes first the
// fallback answer is returned and the late result is dropped.
func within[T any](ctx context.Context, timeout time.Duration, work func(context.Context) T, fallback func() T) T {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan T, 1)
	go func() {
		done <- work(ctx)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		common.FromContext(ctx).LogWarning("Request exceeded %v, answering with the local fallback", timeout)
		return fallback()
	}
}

// begin attaches a request context for userID to the request.
func begin(c *gin.Context, userID string) (context.Context, *common.RequestContext) {
	reqCtx := common.NewRequestContext(userID)
	c.Header("X-Request-ID", reqCtx.RequestID)
	return common.WithRequestContext(c.Request.Context(), reqCtx), reqCtx
}
