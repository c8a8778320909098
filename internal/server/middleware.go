package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"kycflow/internal/utils"
	"kycflow/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	contextKeyActor     contextKey = "actor"
	contextKeyRequestID contextKey = "request_id"
)

const headerRequestID = "X-Request-Id"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		requestID := r.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = utils.RequestID()
		}
		w.Header().Set(headerRequestID, requestID)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)

		next.ServeHTTP(rw, r.WithContext(ctx))

		entry := s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
			"request_id":  requestID,
		})
		if rw.statusCode >= http.StatusInternalServerError {
			entry.Warn("http request")
			return
		}
		entry.Info("http request")
	})
}

// sessionCookie is the value carried by the encoded session cookie.
type sessionCookie struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// ResolveActor attaches the caller's provenance to the request context. The
// actor id comes from a verified bearer token or the session cookie; the
// session id from the cookie, or a fresh anonymous id. Identity is recorded,
// never enforced.
func (s *Service) ResolveActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var actor types.Actor

		if s.cookie != nil {
			if c, err := r.Cookie(s.config.CookieName); err == nil {
				var session sessionCookie
				if err := s.cookie.Decode(s.config.CookieName, c.Value, &session); err != nil {
					s.logger.WithError(err).Debug("ignoring undecodable session cookie")
				} else {
					actor.SessionID = session.SessionID
					actor.ActorID = session.UserID
				}
			}
		}

		if subject, ok := s.bearerSubject(r); ok {
			actor.ActorID = subject
		}

		if actor.SessionID == "" {
			actor.SessionID = utils.NanoID(0)
		}

		ctx := context.WithValue(r.Context(), contextKeyActor, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) bearerSubject(r *http.Request) (string, bool) {
	if s.jwksCache == nil || s.config.AuthJWKSURL == "" {
		return "", false
	}

	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return "", false
	}

	set, err := s.jwksCache.Lookup(r.Context(), s.config.AuthJWKSURL)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch JWKS")
		return "", false
	}

	token, err := jwt.Parse([]byte(raw), jwt.WithKeySet(set), jwt.WithValidate(true))
	if err != nil {
		s.logger.WithError(err).Debug("ignoring invalid bearer token")
		return "", false
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return "", false
	}

	return subject, true
}

func actorFromContext(ctx context.Context) types.Actor {
	actor, _ := ctx.Value(contextKeyActor).(types.Actor)
	return actor
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// StripTrailingSlash redirects /path/ to /path. 308 keeps the method and
// body for PUT and POST.
func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || !strings.HasSuffix(r.URL.Path, "/") {
			next.ServeHTTP(w, r)
			return
		}

		target := *r.URL
		target.Path = strings.TrimRight(r.URL.Path, "/")
		if target.Path == "" {
			target.Path = "/"
		}

		http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)
	})
}
