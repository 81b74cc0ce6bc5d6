package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/parcauto/fleet-dashboard/internal/config"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.SessionConfig {
	return &config.SessionConfig{
		CookieName: "token",
		TTLDays:    7,
		SigningKey: "test-signing-key",
	}
}

func testManager(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager(testConfig(), zap.NewNop())
	require.NoError(t, err)
	return m
}

func testUser() *domain.User {
	return &domain.User{
		ID:         42,
		Name:       "Jean Mbarga",
		Email:      "jean.mbarga@parcauto.cm",
		Role:       domain.RoleChief,
		EmployeeID: "EMP-0042",
	}
}

func TestNewManagerRequiresSigningKey(t *testing.T) {
	cfg := testConfig()
	cfg.SigningKey = ""

	_, err := session.NewManager(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestIssueAndParse(t *testing.T) {
	m := testManager(t)

	signed, expiresAt, err := m.Issue(testUser(), "backend-bearer-token")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	sess, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "backend-bearer-token", sess.BackendToken)
	assert.Equal(t, 42, sess.User.UserID)
	assert.Equal(t, "Jean Mbarga", sess.User.Name)
	assert.Equal(t, "jean.mbarga@parcauto.cm", sess.User.Email)
	assert.Equal(t, domain.RoleChief, sess.User.Role)
	assert.Equal(t, "EMP-0042", sess.User.EmployeeID)
	assert.True(t, sess.User.IsChief())
	assert.WithinDuration(t, expiresAt, sess.ExpiresAt, time.Second)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	m := testManager(t)

	signed, _, err := m.Issue(testUser(), "backend-bearer-token")
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	_, err = m.Parse(tampered)
	assert.ErrorIs(t, err, session.ErrInvalidSession)
}

func TestParseRejectsWrongKey(t *testing.T) {
	m := testManager(t)

	other := testConfig()
	other.SigningKey = "different-key"
	m2, err := session.NewManager(other, zap.NewNop())
	require.NoError(t, err)

	signed, _, err := m2.Issue(testUser(), "backend-bearer-token")
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, session.ErrInvalidSession)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := testManager(t)

	claims := jwt.MapClaims{
		"bt":    "backend-bearer-token",
		"name":  "Jean Mbarga",
		"email": "jean.mbarga@parcauto.cm",
		"role":  "chief",
		"sub":   "42",
		"iat":   time.Now().Add(-48 * time.Hour).Unix(),
		"exp":   time.Now().Add(-24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, session.ErrExpiredSession)
}

func TestFromRequest(t *testing.T) {
	m := testManager(t)

	signed, _, err := m.Issue(testUser(), "backend-bearer-token")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: signed})

	sess, err := m.FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, 42, sess.User.UserID)
}

func TestFromRequestWithoutCookie(t *testing.T) {
	m := testManager(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
	_, err := m.FromRequest(r)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestSetCookie(t *testing.T) {
	m := testManager(t)
	w := httptest.NewRecorder()

	m.SetCookie(w, "signed-token", time.Now().Add(time.Hour))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "token", c.Name)
	assert.Equal(t, "signed-token", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestClearCookie(t *testing.T) {
	m := testManager(t)
	w := httptest.NewRecorder()

	m.ClearCookie(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "token", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
}
