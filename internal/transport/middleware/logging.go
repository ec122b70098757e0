package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/frahmantamala/orgtree/pkg/logger"
)

// maxLoggedBody caps how much of a request or response body is logged. Tree
// responses for a seeded database run to tens of kilobytes.
const maxLoggedBody = 2048

// sensitiveFields are field names that should be filtered from logs
var sensitiveFields = []string{
	"password",
	"token",
	"authorization",
	"secret",
	"credential",
}

// LoggingMiddleware logs every request and response, tagged with the trace id
// when RequestID ran first.
func LoggingMiddleware(base *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lg := requestLogger(r, base)

			lg.Info("incoming request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"headers", filterSensitiveHeaders(r.Header),
				"body", filterSensitiveBody(readBody(r)),
			)

			ww := &responseWriter{ResponseWriter: w}
			next.ServeHTTP(ww, r.WithContext(logger.Into(r.Context(), lg)))

			status := ww.statusCode
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			lg.Log(r.Context(), level, "response",
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"response_size", ww.size,
				"body", filterSensitiveBody(ww.body.Bytes()),
			)
		})
	}
}

func requestLogger(r *http.Request, base *slog.Logger) *slog.Logger {
	if base == nil {
		return logger.From(r.Context())
	}
	if id := TraceID(r.Context()); id != "" {
		return base.With("trace_id", id)
	}
	return base
}

func readBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body
}

// responseWriter keeps the status and the first maxLoggedBody bytes of the body.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
	body       bytes.Buffer
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.statusCode == 0 {
		rw.statusCode = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if room := maxLoggedBody - rw.body.Len(); room > 0 {
		rw.body.Write(b[:min(room, len(b))])
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

func isSensitive(name string) bool {
	lower := strings.ToLower(name)
	return slices.ContainsFunc(sensitiveFields, func(field string) bool {
		return strings.Contains(lower, field)
	})
}

func filterSensitiveHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitive(name) {
			filtered[name] = "[FILTERED]"
			continue
		}
		filtered[name] = strings.Join(values, ", ")
	}
	return filtered
}

func filterSensitiveBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "...[TRUNCATED]"
	}

	var jsonData interface{}
	if err := json.Unmarshal(body, &jsonData); err != nil {
		if isSensitive(string(body)) {
			return "[FILTERED - Contains sensitive data]"
		}
		return string(body)
	}

	filteredBytes, err := json.Marshal(filterSensitiveJSON(jsonData))
	if err != nil {
		return "[ERROR - Failed to marshal filtered JSON]"
	}
	return string(filteredBytes)
}

func filterSensitiveJSON(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		filtered := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isSensitive(key) {
				filtered[key] = "[FILTERED]"
				continue
			}
			filtered[key] = filterSensitiveJSON(value)
		}
		return filtered
	case []interface{}:
		filtered := make([]interface{}, len(v))
		for i, item := range v {
			filtered[i] = filterSensitiveJSON(item)
		}
		return filtered
	default:
		return v
	}
}
