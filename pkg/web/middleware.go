package web

import (
	"net/http"
	"time"

	"github.com/ImmobilienScout24/yum-repo-server/pkg/logger"

	"github.com/google/uuid"
)

// statusRecorder captures status and byte count for access logging
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += int64(n)
	return n, err
}

// AccessLog tags each request with a request id, attaches a request-scoped
// logger to the context and emits one access log line per request.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		l := logger.Ctx(r.Context()).With().
			Str("request_id", uuid.NewString()).
			Logger()
		ctx := logger.WithLogger(r.Context(), &l)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		l.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Int64("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
