package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/eonite/portal-backend/api/responses"
	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
	"github.com/eonite/portal-backend/pkg/logger"
	pkgredis "github.com/eonite/portal-backend/pkg/redis"
)

const (
	idempotencyHeader = "Idempotency-Key"
	replayedHeader    = "Idempotent-Replayed"

	adminIdempotencyTTL    = 24 * time.Hour
	checkoutIdempotencyTTL = 7 * 24 * time.Hour
	// A crashed request releases its key after this long.
	inFlightTTL = time.Minute

	stateInFlight  = "in_flight"
	stateCompleted = "completed"
)

// idempotentRoutes maps "METHOD pattern" to the record TTL. Zero means the
// checkout TTL handed to Idempotency.
var idempotentRoutes = map[string]time.Duration{
	"POST /api/v1/checkout":                       0,
	"POST /api/v1/admin/offers":                   adminIdempotencyTTL,
	"POST /api/v1/admin/inventory":                adminIdempotencyTTL,
	"POST /api/v1/admin/orders/{orderId}/status":  adminIdempotencyTTL,
	"POST /api/v1/admin/orders/{orderId}/payment": adminIdempotencyTTL,
}

type idempotencyRecord struct {
	State       string `json:"state"`
	RequestHash string `json:"request_hash"`
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

// Idempotency makes the routes in idempotentRoutes safe to retry. The first
// request under a key claims it, later requests either replay the stored
// response or are told the original is still running. Retryable server
// failures release the key so the client can retry with it.
func Idempotency(store pkgredis.IdempotencyStore, checkoutTTL time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	if checkoutTTL <= 0 {
		checkoutTTL = checkoutIdempotencyTTL
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ttl, ok := routeTTL(r.Method, routePattern(r))
			if !ok || store == nil {
				next.ServeHTTP(w, r)
				return
			}
			if ttl == 0 {
				ttl = checkoutTTL
			}

			ctx := r.Context()
			clientKey := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			if clientKey == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, idempotencyHeader+" header required"))
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request body"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			hash := requestHash(r, body)
			key := store.IdempotencyKey(idempotencyScope(r), clientKey)

			claim, err := json.Marshal(idempotencyRecord{State: stateInFlight, RequestHash: hash})
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode idempotency claim"))
				return
			}
			claimed, err := store.SetNX(ctx, key, string(claim), inFlightTTL)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim idempotency key"))
				return
			}
			if !claimed {
				replayOrReject(ctx, store, key, hash, w, logg)
				return
			}

			rec := &responseCapture{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			status := rec.statusCode()
			if releasable(status, rec.body.Bytes()) {
				if err := store.Del(ctx, key); err != nil {
					logError(ctx, logg, "release idempotency key", err)
				}
				return
			}

			done, err := json.Marshal(idempotencyRecord{
				State:       stateCompleted,
				RequestHash: hash,
				Status:      status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			})
			if err != nil {
				logError(ctx, logg, "encode idempotency record", err)
				return
			}
			if err := store.Set(ctx, key, string(done), ttl); err != nil {
				logError(ctx, logg, "persist idempotency record", err)
			}
		})
	}
}

func replayOrReject(ctx context.Context, store pkgredis.IdempotencyStore, key, hash string, w http.ResponseWriter, logg *logger.Logger) {
	stored, err := store.Get(ctx, key)
	if errors.Is(err, redis.Nil) {
		// the holder released the key between our claim and this read
		responses.WriteError(ctx, logg, w, inFlightError())
		return
	}
	if err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read idempotency record"))
		return
	}

	var record idempotencyRecord
	if err := json.Unmarshal([]byte(stored), &record); err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode idempotency record"))
		return
	}
	if record.RequestHash != hash {
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with a different request"))
		return
	}
	if record.State != stateCompleted {
		responses.WriteError(ctx, logg, w, inFlightError())
		return
	}

	if record.ContentType != "" {
		w.Header().Set("Content-Type", record.ContentType)
	}
	w.Header().Set(replayedHeader, "true")
	w.WriteHeader(record.Status)
	_, _ = w.Write(record.Body)
}

// releasable reports whether a response leaves the key free for a retry. Server
// failures do, unless their error code says the request must not be repeated,
// as when an order header was already written.
func releasable(status int, body []byte) bool {
	if status < http.StatusInternalServerError {
		return false
	}
	var envelope responses.ErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Code == "" {
		return true
	}
	return pkgerrors.MetadataFor(pkgerrors.Code(envelope.Error.Code)).Retryable
}

func inFlightError() error {
	return pkgerrors.New(pkgerrors.CodeIdempotency, "a request with this idempotency key is still being processed").
		WithDetails(map[string]any{"retryable": true})
}

// idempotencyScope keeps keys from colliding across callers and endpoints.
func idempotencyScope(r *http.Request) string {
	return strings.Join([]string{UserIDFromContext(r.Context()), r.Method, r.URL.Path}, "|")
}

func requestHash(r *http.Request, body []byte) string {
	h := sha256.New()
	h.Write([]byte(r.Method + " " + r.URL.Path + "\n"))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if pattern := rc.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func routeTTL(method, pattern string) (time.Duration, bool) {
	if pattern != "/" {
		pattern = strings.TrimSuffix(pattern, "/")
	}
	ttl, ok := idempotentRoutes[method+" "+pattern]
	return ttl, ok
}

type responseCapture struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (r *responseCapture) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseCapture) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) statusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func logError(ctx context.Context, logg *logger.Logger, msg string, err error) {
	if logg == nil || err == nil {
		return
	}
	logg.Error(ctx, msg, err)
}
