package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/buildmate/server/internal/shared/errors"
	"github.com/buildmate/server/internal/shared/logger"
	"github.com/buildmate/server/internal/shared/ratelimit"
	"github.com/buildmate/server/internal/shared/response"
)

const (
	// RateLimitRemaining is the header for remaining requests.
	RateLimitRemaining = "X-RateLimit-Remaining"
	// RateLimitLimit is the header for the limit.
	RateLimitLimit = "X-RateLimit-Limit"
	// RetryAfter is the header for retry time.
	RetryAfter = "Retry-After"
)

// RateLimitByUser limits authenticated callers, keyed by route and user id.
// A nil limiter disables limiting; limiter failures let the request through.
func RateLimitByUser(limiter ratelimit.Limiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			key = "user:" + userID.String()
		}
		key = c.FullPath() + ":" + key

		ctx := c.Request.Context()
		allowed, err := limiter.Allow(ctx, key, limit, window)
		if err != nil {
			logger.FromContext(ctx).Warn("rate limiter unavailable", logger.Err(err))
			c.Next()
			return
		}

		remaining, _ := limiter.Remaining(ctx, key, limit, window)
		c.Header(RateLimitLimit, strconv.Itoa(limit))
		c.Header(RateLimitRemaining, strconv.Itoa(remaining))

		if !allowed {
			c.Header(RetryAfter, strconv.Itoa(int(window.Seconds())))
			response.ErrorWithCode(c, http.StatusTooManyRequests, apperrors.CodeRateLimited, "too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
