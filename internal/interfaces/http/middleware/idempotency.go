package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "menvo.backend/internal/domain/errors"
	"menvo.backend/internal/infrastructure/metrics"
	"menvo.backend/internal/interfaces/http/response"
	"menvo.backend/pkg/logger"
	"menvo.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a completed key is remembered
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware absorbs repeated submissions carrying the same Idempotency-Key.
// A key still being processed answers REQUEST_IN_PROGRESS, a key that already succeeded answers
// DUPLICATE_SUBMISSION with the original body. Failed requests release the key so the client may retry.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		owner := "anonymous"
		if snap, ok := GetIdentity(c); ok {
			owner = snap.UserID.String()
		}
		storageKey := fmt.Sprintf("menvo:idempotency:%s:%s", owner, key)
		ctx := c.Request.Context()

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			// the database constraint still rejects true duplicates
			logger.Warn(ctx, "idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}

		if !acquired {
			val, err := redisGet(ctx, storageKey)
			if err != nil && !errors.Is(err, redis.ErrNil) {
				response.Abort(c, domainerrors.Upstream(err))
				return
			}
			if err != nil || val == processingMarker {
				metrics.IdempotencyTotal.WithLabelValues("in_progress").Inc()
				response.Abort(c, domainerrors.ConflictWithCode(domainerrors.CodeRequestInProgress, "request already in progress"))
				return
			}

			metrics.IdempotencyTotal.WithLabelValues("duplicate").Inc()
			body := gin.H{
				"code":    domainerrors.CodeDuplicateSubmission,
				"message": "request was already processed",
			}
			if json.Valid([]byte(val)) {
				body["original"] = json.RawMessage(val)
			}
			c.AbortWithStatusJSON(http.StatusConflict, body)
			return
		}

		metrics.IdempotencyTotal.WithLabelValues("miss").Inc()
		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			_ = redisSet(ctx, storageKey, w.body.String(), RetentionDuration)
		} else {
			_ = redisDel(ctx, storageKey)
		}
	}
}
