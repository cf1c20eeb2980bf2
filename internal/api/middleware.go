package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hai-on-op/hai-staking-service/internal/observability/metrics"
	"github.com/hai-on-op/hai-staking-service/internal/observability/tracing"
)

const traceIDHeader = "X-Trace-Id"

// withTraceID reuses a caller supplied trace id when it is a UUID and echoes
// the id back on the response.
func withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id, ok := tracing.ParseTraceID(r.Header.Get(traceIDHeader)); ok {
			ctx = tracing.WithTraceID(ctx, id)
		} else {
			ctx = tracing.InjectTraceID(ctx)
		}
		w.Header().Set(traceIDHeader, tracing.TraceID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordHTTPRequestDuration(time.Since(start), route, r.Method, status)
	})
}

// requireWriteToken guards routes that send transactions from the service
// signer. Requests must carry the configured bearer token; without one
// configured the routes are disabled.
func (s *Server) requireWriteToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.writeToken == "" {
			writeError(w, r, http.StatusForbidden, "WRITES_DISABLED", "transaction routes are disabled")
			return
		}
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.writeToken)) != 1 {
			writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
