package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mantas/appointments/internal/auth"
	"github.com/mantas/appointments/internal/infrastructure/database"
	"github.com/mantas/appointments/internal/metrics"
	"github.com/mantas/appointments/internal/offering"
	"github.com/mantas/appointments/internal/password"
	"github.com/mantas/appointments/internal/server"
	"github.com/mantas/appointments/internal/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "0123456789abcdef0123456789abcdef"

type app struct {
	router http.Handler
	tokens auth.Service
	clock  time.Time
}

func newApp(t *testing.T, ttl time.Duration) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLiteDB(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db, "sqlite", &users.User{}, &offering.OfferedService{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)

	a := &app{clock: time.Now()}
	reg := prometheus.NewRegistry()
	m := metrics.NewAuth(reg)
	a.tokens = auth.NewJWTService(auth.TokenConfig{Secret: secret, TTL: ttl}, auth.WithClock(func() time.Time { return a.clock }))
	userService, err := users.NewService(users.NewGormRepository(db), password.NewBcryptHasher(bcrypt.MinCost), a.tokens, users.WithMetrics(m))
	require.NoError(t, err)

	a.router = server.NewRouter(server.Deps{
		Log:       zerolog.Nop(),
		Tokens:    a.tokens,
		Users:     userService,
		Offerings: offering.NewService(offering.NewGormRepository(db)),
		Metrics:   m,
		Gatherer:  reg,
		DB:        sqlDB,
	})
	return a
}

func (a *app) do(method, path, token, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) register(t *testing.T, username, pw, role string) {
	t.Helper()
	w := a.do(http.MethodPost, "/api/v1/users", "", `{"username":"`+username+`","password":"`+pw+`","role":"`+role+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (a *app) login(t *testing.T, username, pw string) string {
	t.Helper()
	w := a.do(http.MethodPost, "/api/v1/tokens", "", `{"username":"`+username+`","password":"`+pw+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp users.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestScenario_RegisterLoginProvider(t *testing.T) {
	a := newApp(t, time.Hour)

	a.register(t, "alice", "pw1", "provider")
	token := a.login(t, "alice", "pw1")

	claims, err := a.tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "ROLE_PROVIDER", claims.Role)

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/v1/services", token, "").Code)
	w := a.do(http.MethodGet, "/api/v1/appointments/provider", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome, Provider!", w.Body.String())
}

func TestScenario_ClientOnProviderRouteIsForbidden(t *testing.T) {
	a := newApp(t, time.Hour)
	a.register(t, "bob", "pw2", "client")
	token := a.login(t, "bob", "pw2")

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/v1/appointments/provider", token, "").Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/v1/services", token, "").Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/api/v1/services", token, `{"name":"a","price":1,"category":"OTHER"}`).Code)

	w := a.do(http.MethodGet, "/api/v1/appointments/client", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome, Client!", w.Body.String())
}

func TestScenario_NoAuthorizationHeader(t *testing.T) {
	a := newApp(t, time.Hour)

	for _, path := range []string{"/api/v1/appointments/client", "/api/v1/appointments/provider", "/api/v1/services", "/api/v1/me"} {
		w := a.do(http.MethodGet, path, "", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/health", "", "").Code)
}

func TestScenario_ShortLivedTokenExpires(t *testing.T) {
	a := newApp(t, time.Millisecond)
	a.register(t, "carol", "pw3", "client")
	token := a.login(t, "carol", "pw3")

	a.clock = a.clock.Add(100 * time.Millisecond)
	w := a.do(http.MethodGet, "/api/v1/appointments/client", token, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, a.do(http.MethodGet, "/api/v1/appointments/client", "", "").Body.String(), w.Body.String())
}

func TestDuplicateRegistration(t *testing.T) {
	a := newApp(t, time.Hour)
	a.register(t, "alice", "pw1", "provider")

	w := a.do(http.MethodPost, "/api/v1/users", "", `{"username":"alice","password":"other","role":"client"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	token := a.login(t, "alice", "pw1")
	claims, err := a.tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ROLE_PROVIDER", claims.Role)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	a := newApp(t, time.Hour)
	a.register(t, "alice", "pw1", "provider")

	wrongPassword := a.do(http.MethodPost, "/api/v1/tokens", "", `{"username":"alice","password":"nope"}`)
	unknownUser := a.do(http.MethodPost, "/api/v1/tokens", "", `{"username":"mallory","password":"pw1"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.NotContains(t, wrongPassword.Body.String(), "password is")
}

func TestProviderManagesServices(t *testing.T) {
	a := newApp(t, time.Hour)
	a.register(t, "alice", "pw1", "provider")
	token := a.login(t, "alice", "pw1")

	w := a.do(http.MethodPost, "/api/v1/services", token, `{"name":"Yoga","price":15,"category":"FITNESS"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/api/v1/services/1", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Yoga"`)

	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, "/api/v1/services/1", token, "").Code)
}

func TestMeAndMetrics(t *testing.T) {
	a := newApp(t, time.Hour)
	a.register(t, "alice", "pw1", "provider")
	token := a.login(t, "alice", "pw1")

	me := a.do(http.MethodGet, "/api/v1/me", token, "")
	assert.JSONEq(t, `{"username":"alice","authorities":["ROLE_PROVIDER"]}`, me.Body.String())
	assert.NotEmpty(t, me.Header().Get("X-Request-Id"))

	w := a.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `appointments_auth_logins_total{outcome="success"} 1`)
	assert.Contains(t, w.Body.String(), `appointments_auth_registrations_total{outcome="success"} 1`)
}
