package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"idea-relay/internal/domain/repository"
	"idea-relay/internal/interfaces/http/dto"
	apperrors "idea-relay/pkg/errors"
	"idea-relay/pkg/logger"
	"idea-relay/pkg/metrics"
)

const (
	// SessionIDHeader 会话 ID 头
	SessionIDHeader = "X-Session-ID"

	defaultSessionTTL = 2 * time.Minute
)

// SessionGuard 同一会话同时至多一个在途生成请求
//
// 未携带 X-Session-ID 的请求不受约束；登记表故障时放行。
func SessionGuard(registry repository.InflightRegistry, ttl time.Duration) gin.HandlerFunc {
	if registry == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(SessionIDHeader))
		if sessionID == "" {
			c.Next()
			return
		}

		ctx := logger.WithContext(c.Request.Context(), logger.SessionIDKey, sessionID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(ctxKeySessionID, sessionID)

		token := c.GetString(ctxKeyRequestID)
		if token == "" {
			token = uuid.New().String()
		}

		acquired, err := registry.Acquire(ctx, sessionID, token, ttl)
		if err != nil {
			logger.Warn(ctx, "session registry unavailable, request not guarded", "error", err.Error())
			c.Next()
			return
		}
		if !acquired {
			metrics.SessionInflightRejected.Inc()
			logger.Info(ctx, "generation request rejected, session busy")
			dto.AbortWithError(c, http.StatusConflict, apperrors.CodeSessionBusy, dto.MsgSessionBusy)
			return
		}

		defer func() {
			if err := registry.Release(context.WithoutCancel(ctx), sessionID, token); err != nil {
				logger.Warn(ctx, "failed to release session", "error", err.Error())
			}
		}()

		c.Next()
	}
}
