// Package authz decides whether a principal may reach a route.
package authz

import (
	"strings"

	"github.com/mantas/appointments/internal/auth"
)

const RoleProvider = "ROLE_PROVIDER"

type Decision int

const (
	Allow Decision = iota
	Unauthenticated
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Rule binds a path prefix to a requirement. Public rules admit anyone;
// otherwise a principal is needed, holding Authority when it is set.
// Method, when set, restricts the rule to that HTTP method.
type Rule struct {
	Method    string
	Prefix    string
	Authority string
	Public    bool
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "" && !strings.EqualFold(r.Method, method) {
		return false
	}
	return matchPrefix(r.Prefix, path)
}

// matchPrefix matches whole path segments: /a/b covers /a/b and /a/b/c
// but not /a/bc.
func matchPrefix(prefix, path string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// Policy is an ordered rule list; the first matching rule wins and
// unmatched routes need any authenticated principal.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: append([]Rule(nil), rules...)}
}

// DefaultPolicy gates the appointments API.
func DefaultPolicy() *Policy {
	return NewPolicy(
		Rule{Method: "POST", Prefix: "/api/v1/users", Public: true},
		Rule{Method: "POST", Prefix: "/api/v1/tokens", Public: true},
		Rule{Prefix: "/health", Public: true},
		Rule{Prefix: "/metrics", Public: true},
		Rule{Prefix: "/api/v1/services", Authority: RoleProvider},
		Rule{Prefix: "/api/v1/appointments/provider", Authority: RoleProvider},
	)
}

// Decide evaluates a request. p is nil for unauthenticated requests.
func (pol *Policy) Decide(method, path string, p *auth.Principal) Decision {
	rule := Rule{}
	for _, r := range pol.rules {
		if r.matches(method, path) {
			rule = r
			break
		}
	}

	if rule.Public {
		return Allow
	}
	if p == nil {
		return Unauthenticated
	}
	if rule.Authority != "" && !p.HasAuthority(rule.Authority) {
		return Forbidden
	}
	return Allow
}
