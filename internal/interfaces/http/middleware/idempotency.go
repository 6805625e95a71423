package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smbc/backend/internal/domain/shared"
	"github.com/smbc/backend/internal/infrastructure/logger"
	"github.com/smbc/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const maxIdempotencyKeyLength = 200

// Idempotency claims the Idempotency-Key header before a batch save runs.
// A repeated key is answered with 409 DUPLICATE_REQUEST. When the handler
// fails the key is released so the client may retry it. Requests without the
// header pass through.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			abort(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Idempotency-Key is too long")
			return
		}

		// Keys are scoped by caller and request path, so the same key sent to
		// two bookings' payment routes claims two slots
		scoped := c.Request.URL.Path + "|" + key
		if claims := GetClaims(c); claims != nil {
			scoped = claims.UserID + "|" + scoped
		}

		ctx := c.Request.Context()
		claimed, err := store.Claim(ctx, scoped, ttl)
		if err != nil {
			logger.FromContext(ctx).Error("idempotency claim failed", zap.Error(err))
			abort(c, http.StatusServiceUnavailable, shared.CodeStorageUnavailable, shared.ErrStorageUnavailable.Message)
			return
		}
		if !claimed {
			abort(c, http.StatusConflict, shared.CodeDuplicateRequest, shared.ErrDuplicateRequest.Message)
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := store.Release(ctx, scoped); err != nil {
				logger.FromContext(ctx).Warn("idempotency release failed", zap.Error(err))
			}
		}
	}
}
