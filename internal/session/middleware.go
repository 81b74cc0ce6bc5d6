package session

import (
	"net/http"
	"time"

	"github.com/parcauto/fleet-dashboard/internal/backend"
	"go.uber.org/zap"
)

// Middleware handles session resolution for HTTP requests
type Middleware struct {
	manager *Manager
	logger  *zap.Logger
}

// NewMiddleware creates a new session middleware
func NewMiddleware(manager *Manager, logger *zap.Logger) *Middleware {
	return &Middleware{
		manager: manager,
		logger:  logger,
	}
}

// Authenticate resolves the session cookie, stores the user context and the
// backend bearer token on the request context. A missing, expired or tampered
// cookie clears the cookie and ends the request with 401; the browser then
// returns to the login screen.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sess, err := m.manager.FromRequest(r)
		if err != nil {
			if err != ErrNoSession {
				m.logger.Warn("session resolution failed",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
			}
			m.manager.ClearCookie(w)
			writeUnauthorized(w)
			return
		}

		m.logger.Debug("request authenticated",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("user_id", sess.User.UserID),
			zap.String("role", string(sess.User.Role)),
			zap.Duration("auth_duration", time.Since(start)),
		)

		ctx := WithUserContext(r.Context(), &sess.User)
		ctx = backend.WithToken(ctx, sess.BackendToken)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireChief ensures the session user carries the chief role. This is a UI
// gate only; the fleet backend enforces authorization on every call.
func (m *Middleware) RequireChief(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := FromContext(r.Context())
		if !ok {
			writeForbidden(w)
			return
		}
		if !userCtx.IsChief() {
			m.logger.Warn("chief access denied",
				zap.String("path", r.URL.Path),
				zap.Int("user_id", userCtx.UserID),
				zap.String("role", string(userCtx.Role)),
			)
			writeForbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"Session expirée. Veuillez vous reconnecter."}`))
}

func writeForbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"message":"Accès refusé."}`))
}
