package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 24 * time.Hour
	idempotencyPrefix = "idempotency:"
)

// IdempotencyMiddleware replays the cached response for a repeated mutation
// carrying the same Idempotency-Key and an identical body.
type IdempotencyMiddleware struct {
	redis *redis.Client
}

type storedResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
	BodyHash    string `json:"body_hash"`
}

func NewIdempotencyMiddleware(redisClient *redis.Client) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{redis: redisClient}
}

// captureWriter records the response for caching
type captureWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.statusCode = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.body.Write(b)
	return cw.ResponseWriter.Write(b)
}

func (m *IdempotencyMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		hash := sha256.Sum256(bodyBytes)
		bodyHash := hex.EncodeToString(hash[:])
		cacheKey := idempotencyPrefix + key

		ctx := r.Context()

		if cached, err := m.lookup(ctx, cacheKey); err == nil {
			if cached.BodyHash != bodyHash {
				writeJSONError(w, http.StatusConflict, "idempotency_conflict",
					"idempotency key already used with different request")
				return
			}

			w.Header().Set("Content-Type", cached.ContentType)
			w.WriteHeader(cached.StatusCode)
			w.Write(cached.Body)
			return
		}

		// One in-flight request per key at a time.
		lockKey := cacheKey + ":lock"
		locked, err := m.redis.SetNX(ctx, lockKey, "1", 30*time.Second).Result()
		if err != nil || !locked {
			writeJSONError(w, http.StatusConflict, "request_in_progress",
				"a request with this idempotency key is already being processed")
			return
		}
		defer m.redis.Del(ctx, lockKey)

		cw := &captureWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(cw, r)

		// Only successful outcomes are worth replaying.
		if cw.statusCode >= 200 && cw.statusCode < 300 {
			m.store(ctx, cacheKey, &storedResponse{
				StatusCode:  cw.statusCode,
				ContentType: cw.Header().Get("Content-Type"),
				Body:        cw.body.Bytes(),
				BodyHash:    bodyHash,
			})
		}
	})
}

func (m *IdempotencyMiddleware) lookup(ctx context.Context, key string) (*storedResponse, error) {
	data, err := m.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var cached storedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

func (m *IdempotencyMiddleware) store(ctx context.Context, key string, resp *storedResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	m.redis.Set(ctx, key, data, idempotencyTTL)
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
	})
}
