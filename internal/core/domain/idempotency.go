package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// IdempotentResponse is a stored transfer response replayed for a repeated Idempotency-Key.
type IdempotentResponse struct {
	StatusCode  int       `json:"status_code"`
	Body        []byte    `json:"body"`
	RequestHash string    `json:"request_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BuildIdempotencyKey scopes a client supplied key to the calling user.
func BuildIdempotencyKey(username, clientKey string) string {
	return username + ":" + clientKey
}

// RequestFingerprint identifies the request a key was first used with.
func RequestFingerprint(route string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(route))
	h.Write([]byte{'\n'})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
