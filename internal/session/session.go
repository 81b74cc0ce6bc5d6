// Package session manages the browser session for the dashboard. The session
// is a gateway-signed JWT set as a 7-day cookie; it wraps the bearer token the
// fleet backend issued at login together with the user's identity and role.
// The lifecycle is anonymous -> authenticated (login) -> anonymous (logout,
// expiry, or failed resolution).
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/parcauto/fleet-dashboard/internal/config"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrExpiredSession = errors.New("session has expired")
	ErrNoSession      = errors.New("no session cookie")
)

// Session is the decoded content of a session cookie
type Session struct {
	BackendToken string
	User         UserContext
	ExpiresAt    time.Time
}

// Manager signs, parses and clears session cookies
type Manager struct {
	cfg    *config.SessionConfig
	logger *zap.Logger
}

// NewManager creates a session manager. The signing key must be non-empty.
func NewManager(cfg *config.SessionConfig, logger *zap.Logger) (*Manager, error) {
	if cfg.SigningKey == "" {
		return nil, fmt.Errorf("session signing key is required")
	}
	return &Manager{cfg: cfg, logger: logger}, nil
}

type sessionClaims struct {
	BackendToken string `json:"bt"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	EmployeeID   string `json:"employee_id,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs a session token for the given user and backend bearer token
func (m *Manager) Issue(user *domain.User, backendToken string) (string, time.Time, error) {
	expiresAt := time.Now().Add(m.cfg.TTL())

	claims := sessionClaims{
		BackendToken: backendToken,
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
		EmployeeID:   user.EmployeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.cfg.SigningKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse validates a session token and returns the decoded session
func (m *Manager) Parse(tokenString string) (*Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.cfg.SigningKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSession
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !token.Valid {
		return nil, ErrInvalidSession
	}

	var userID int
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidSession)
	}

	return &Session{
		BackendToken: claims.BackendToken,
		User: UserContext{
			UserID:     userID,
			Name:       claims.Name,
			Email:      claims.Email,
			Role:       domain.UserRole(claims.Role),
			EmployeeID: claims.EmployeeID,
		},
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// SetCookie writes the session cookie on the response
func (m *Manager) SetCookie(w http.ResponseWriter, signedToken string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    signedToken,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie. Called on logout and whenever
// session resolution fails.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest reads and parses the session cookie from a request
func (m *Manager) FromRequest(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return nil, ErrNoSession
	}
	return m.Parse(cookie.Value)
}
