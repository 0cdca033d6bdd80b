package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/backoffice/internal/authctx"
	"github.com/smallbiznis/backoffice/internal/observability/logger"
	"go.uber.org/zap"
)

const (
	endpointUpload          = "upload"
	rateLimitReasonClientIP = "client-rate"
)

// SessionContext resolves the session cookie into an actor on the request
// context along with the caller's address. Anonymous requests pass through;
// handlers decide what needs a session.
func (s *Server) SessionContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := authctx.WithClient(c.Request.Context(), authctx.Client{
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Request = c.Request.WithContext(ctx)

		token, ok := s.sessions.ReadToken(c)
		if !ok {
			c.Next()
			return
		}

		sess, user, err := s.authsvc.Authenticate(ctx, token)
		if err != nil {
			logger.FromContext(ctx).Debug("session rejected", zap.Error(err))
			c.Next()
			return
		}

		ctx = authctx.WithActor(ctx, authctx.Actor{
			UserID:    user.ID,
			SessionID: sess.ID,
			Email:     user.Email,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// UploadRateLimit applies the per-client upload bucket when redis limits are
// enabled.
func (s *Server) UploadRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.uploadLimiter.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		res, err := s.uploadLimiter.Allow(ctx, c.ClientIP())
		if err != nil {
			logger.FromContext(ctx).Warn("upload rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !res.Allowed {
			s.obsMetrics.RecordRateLimitDenied(ctx, endpointUpload, rateLimitReasonClientIP)
			if res.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
			}
			AbortWithError(c, ErrTooManyRequests)
			return
		}

		s.obsMetrics.RecordRateLimitAllowed(ctx, endpointUpload)
		c.Next()
	}
}
