package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// HeaderIdempotentReplay marks a response served from the idempotency store.
	HeaderIdempotentReplay = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 255
	inProgressTTL        = time.Minute
)

type bodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response for a repeated Idempotency-Key.
// Keys are scoped per user. Requests without the header pass through, and
// so does everything when the store is unreachable. 5xx responses are not
// stored so the client can retry with the same key. Reusing a key with a
// different body is rejected.
func Idempotency(store ports.IdempotencyStore, ttl time.Duration, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := c.GetHeader(HeaderIdempotencyKey)
		if clientKey == "" {
			c.Next()
			return
		}
		if len(clientKey) > maxIdempotencyKeyLen {
			response.Error(c, apperror.Validation("Idempotency-Key is too long."))
			c.Abort()
			return
		}

		var raw []byte
		if c.Request.Body != nil {
			var err error
			if raw, err = io.ReadAll(c.Request.Body); err != nil {
				response.Error(c, apperror.Validation("Request body could not be read."))
				c.Abort()
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		}

		ctx := c.Request.Context()
		key := domain.BuildIdempotencyKey(c.GetString(CtxUsername), clientKey)
		fingerprint := domain.RequestFingerprint(c.FullPath(), raw)

		if replayed(c, store, key, fingerprint, log) {
			return
		}

		reserved, err := store.Reserve(ctx, key, inProgressTTL)
		if err != nil {
			log.Warn().Err(err).Msg("idempotency reservation failed, processing without it")
			c.Next()
			return
		}
		if !reserved {
			// Finished between the lookup and the reservation?
			if replayed(c, store, key, fingerprint, log) {
				return
			}
			response.Error(c, apperror.ErrRequestInProgress())
			c.Abort()
			return
		}

		bw := &bodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = bw
		c.Next()

		persistCtx := context.WithoutCancel(ctx)
		status := bw.Status()
		if status >= http.StatusInternalServerError {
			if err := store.Release(persistCtx, key); err != nil {
				log.Warn().Err(err).Msg("failed to release idempotency key")
			}
			return
		}

		resp := &domain.IdempotentResponse{
			StatusCode:  status,
			Body:        bw.body.Bytes(),
			RequestHash: fingerprint,
			CreatedAt:   time.Now().UTC(),
		}
		if err := store.Save(persistCtx, key, resp, ttl); err != nil {
			log.Error().Err(err).Msg("failed to store idempotent response")
			_ = store.Release(persistCtx, key)
		}
	}
}

// replayed answers from the store when key already holds a response. A key
// reused with a different body is rejected instead of replayed.
func replayed(c *gin.Context, store ports.IdempotencyStore, key, fingerprint string, log zerolog.Logger) bool {
	stored, err := store.Get(c.Request.Context(), key)
	if err != nil {
		log.Warn().Err(err).Msg("idempotency lookup failed")
		return false
	}
	if stored == nil {
		return false
	}
	if stored.RequestHash != "" && stored.RequestHash != fingerprint {
		response.Error(c, apperror.ErrIdempotencyKeyReused())
		c.Abort()
		return true
	}
	c.Header(HeaderIdempotentReplay, "true")
	c.Data(stored.StatusCode, "application/json; charset=utf-8", stored.Body)
	c.Abort()
	return true
}
