package middleware

import (
	"context"
	"net/http"

	"github.com/frahmantamala/orgtree/pkg/logger"
	"github.com/google/uuid"
)

type ctxKey string

const traceIDKey ctxKey = "trace_id"

// RequestID tags the request with the incoming X-Trace-ID, or a new one, and
// binds it to the request logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), traceIDKey, traceID)
		ctx = logger.With(ctx, "trace_id", traceID)

		w.Header().Set("X-Trace-ID", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}
