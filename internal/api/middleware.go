package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/vokabox/internal/errors"
	"github.com/vytor/vokabox/internal/logger"
	"github.com/vytor/vokabox/internal/models"
)

// LearnerHeader carries the authenticated learner id set by the auth proxy.
const LearnerHeader = "X-Learner-ID"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

type contextKey string

const learnerContextKey contextKey = "learner"

func learnerFromContext(ctx context.Context) *models.Learner {
	if v := ctx.Value(learnerContextKey); v != nil {
		if l, ok := v.(*models.Learner); ok {
			return l
		}
	}
	return nil
}

// learnerMiddleware resolves the X-Learner-ID header into a stored learner.
func (s *Server) learnerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		raw := strings.TrimSpace(r.Header.Get(LearnerHeader))
		if raw == "" {
			handleError(w, r, errors.NewUnauthorizedError("learner id required"))
			return
		}

		learnerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || learnerID <= 0 {
			log.Warn("invalid learner header: %q", raw)
			handleError(w, r, errors.NewUnauthorizedError("invalid learner id"))
			return
		}

		learner, err := s.LearnerService.GetLearner(r.Context(), learnerID)
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeNotFound) {
				handleError(w, r, errors.NewUnauthorizedError("unknown learner"))
				return
			}
			handleError(w, r, err)
			return
		}

		log = log.WithField("learner_id", learner.ID)
		ctx := context.WithValue(r.Context(), learnerContextKey, learner)
		ctx = logger.NewContext(ctx, log)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminMiddleware lets only supervisors through. It must run after
// learnerMiddleware.
func (s *Server) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		learner := learnerFromContext(r.Context())
		if learner == nil {
			handleError(w, r, errors.NewUnauthorizedError("learner id required"))
			return
		}

		admin, err := s.LearnerService.IsAdmin(r.Context(), learner.ID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		if !admin {
			handleError(w, r, errors.NewForbiddenError("admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests with timing, status codes, and request IDs.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		log := logger.Default().WithFields(map[string]any{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		if r.RemoteAddr != "" {
			log = log.WithField("remote_addr", r.RemoteAddr)
		}

		ctx := logger.NewContext(r.Context(), log)
		r = r.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		log.Debug("request started")

		next.ServeHTTP(wrapped, r)

		log = log.WithFields(map[string]any{
			"status":      wrapped.status,
			"size":        wrapped.size,
			"duration_ms": time.Since(start).Milliseconds(),
		})

		if wrapped.status >= 500 {
			log.Error("request completed with server error")
		} else if wrapped.status >= 400 {
			log.Warn("request completed with client error")
		} else {
			log.Info("request completed")
		}
	})
}

// recoveryMiddleware recovers from panics and logs them.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log := logger.FromContext(r.Context())
				log.Error("panic recovered: %v", rec)
				handleError(w, r, errors.NewInternalError(nil))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
