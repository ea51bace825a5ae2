package middleware

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/designhire-backend/internal/http/response"
	"github.com/yungbote/designhire-backend/internal/observability"
	"github.com/yungbote/designhire-backend/internal/platform/ctxutil"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
	"github.com/yungbote/designhire-backend/internal/platform/ratelimit"
)

type RateLimitMiddleware struct {
	log     *logger.Logger
	limiter ratelimit.Limiter
	metrics *observability.Metrics
}

// NewRateLimitMiddleware returns nil when limiter is nil; a nil middleware
// lets every request through.
func NewRateLimitMiddleware(log *logger.Logger, limiter ratelimit.Limiter, metrics *observability.Metrics) *RateLimitMiddleware {
	if limiter == nil {
		return nil
	}
	return &RateLimitMiddleware{
		log:     log.With("middleware", "RateLimit"),
		limiter: limiter,
		metrics: metrics,
	}
}

func subject(c *gin.Context) string {
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
		return "user:" + rd.UserID.String()
	}
	return "ip:" + c.ClientIP()
}

func (m *RateLimitMiddleware) Limit(rule ratelimit.Rule) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		d, err := m.limiter.Allow(c.Request.Context(), rule, subject(c))
		if err != nil {
			m.log.Warn("Rate limiter unavailable, allowing request", "rule", rule.Name, "error", err)
			c.Next()
			return
		}
		if !d.Allowed {
			m.metrics.RateLimited(rule.Name)
			secs := int(math.Ceil(d.RetryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			response.RespondError(c, http.StatusTooManyRequests, "rate_limited", errors.New("Rate limit exceeded. Please try again later."))
			c.Abort()
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Next()
	}
}
