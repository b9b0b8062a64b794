package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Ritesh010/admin/internal/models"
	"github.com/Ritesh010/admin/internal/session"
)

type contextKey string

const (
	SessionIDKey contextKey = "session_id"
	SessionKey   contextKey = "session"
)

func CORS() func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           86400,
	})
	return c.Handler
}

func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}

type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(r, b),
	}
}

func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.limiter.Allow() {
				http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequestLogging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = generateRequestID()
			}

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			logger.Info().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapped.statusCode).
				Dur("duration", time.Since(start)).
				Msg("Request completed")
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}

// Recovery is the page-level catch-all: panics are logged with the request
// context and the user gets a generic failure page, never a stack trace.
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().
						Interface("error", err).
						Str("path", r.URL.Path).
						Str("method", r.Method).
						Msg("Panic recovered")
					http.Error(w, "An internal error occurred", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Authentication gates protected pages on session presence: a missing or
// unreadable cookie clears any stale state and redirects to signin with a
// notice. Token expiry is not checked here; a stale token surfaces when the
// remote API rejects it.
func Authentication(store *session.Store, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := store.ReadCookie(r)
			if err != nil {
				redirectToSignin(w, r, store)
				return
			}

			sess, ok := store.Get(id)
			if !ok || sess.Token == "" {
				logger.Warn().Str("path", r.URL.Path).Msg("Session missing, forcing re-authentication")
				store.Clear(id)
				redirectToSignin(w, r, store)
				return
			}

			ctx := context.WithValue(r.Context(), SessionIDKey, id)
			ctx = context.WithValue(ctx, SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func redirectToSignin(w http.ResponseWriter, r *http.Request, store *session.Store) {
	store.DropCookie(w)
	notice := url.QueryEscape("Session expired. Please log in again.")
	http.Redirect(w, r, "/signin?error="+notice, http.StatusSeeOther)
}

func GetSessionID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(SessionIDKey).(string)
	return id, ok
}

func GetSession(r *http.Request) (*models.Session, bool) {
	sess, ok := r.Context().Value(SessionKey).(*models.Session)
	return sess, ok
}
