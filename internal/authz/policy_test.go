package authz_test

import (
	"testing"

	"github.com/mantas/appointments/internal/auth"
	"github.com/mantas/appointments/internal/authz"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy(t *testing.T) {
	provider := &auth.Principal{Username: "alice", Authorities: []string{"ROLE_PROVIDER"}}
	client := &auth.Principal{Username: "bob", Authorities: []string{"ROLE_CLIENT"}}
	policy := authz.DefaultPolicy()

	tests := []struct {
		method    string
		path      string
		principal *auth.Principal
		want      authz.Decision
	}{
		{"POST", "/api/v1/users", nil, authz.Allow},
		{"POST", "/api/v1/tokens", nil, authz.Allow},
		{"GET", "/api/v1/users", nil, authz.Unauthenticated},
		{"GET", "/health", nil, authz.Allow},
		{"GET", "/metrics", nil, authz.Allow},

		{"GET", "/api/v1/services", nil, authz.Unauthenticated},
		{"GET", "/api/v1/services", client, authz.Forbidden},
		{"GET", "/api/v1/services", provider, authz.Allow},
		{"DELETE", "/api/v1/services/7", client, authz.Forbidden},
		{"PUT", "/api/v1/services/7", provider, authz.Allow},
		{"GET", "/api/v1/servicesx", client, authz.Allow},

		{"GET", "/api/v1/appointments/provider", client, authz.Forbidden},
		{"GET", "/api/v1/appointments/provider", provider, authz.Allow},
		{"GET", "/api/v1/appointments/provider", nil, authz.Unauthenticated},
		{"GET", "/api/v1/appointments/client", client, authz.Allow},
		{"GET", "/api/v1/appointments/client", provider, authz.Allow},
		{"GET", "/api/v1/appointments/client", nil, authz.Unauthenticated},

		{"GET", "/api/v1/me", nil, authz.Unauthenticated},
		{"GET", "/api/v1/me", client, authz.Allow},
		{"GET", "/unknown", nil, authz.Unauthenticated},
	}

	for _, tt := range tests {
		name := tt.method + " " + tt.path
		if tt.principal != nil {
			name += " as " + tt.principal.Username
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Decide(tt.method, tt.path, tt.principal))
		})
	}
}

func TestPolicy_FirstMatchWins(t *testing.T) {
	policy := authz.NewPolicy(
		authz.Rule{Prefix: "/a/open", Public: true},
		authz.Rule{Prefix: "/a", Authority: "ROLE_X"},
	)
	p := &auth.Principal{Username: "u", Authorities: []string{"ROLE_Y"}}

	assert.Equal(t, authz.Allow, policy.Decide("GET", "/a/open/1", nil))
	assert.Equal(t, authz.Forbidden, policy.Decide("GET", "/a/closed", p))
}

func TestPolicy_EmptyAuthenticatesEverything(t *testing.T) {
	policy := authz.NewPolicy()

	assert.Equal(t, authz.Unauthenticated, policy.Decide("GET", "/", nil))
	assert.Equal(t, authz.Allow, policy.Decide("GET", "/", &auth.Principal{Username: "u"}))
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "allow", authz.Allow.String())
	assert.Equal(t, "unauthenticated", authz.Unauthenticated.String())
	assert.Equal(t, "forbidden", authz.Forbidden.String())
	assert.Equal(t, "unknown", authz.Decision(42).String())
}
