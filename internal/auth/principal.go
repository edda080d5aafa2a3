package auth

import (
	"context"
	"slices"
)

// Principal is the per-request identity derived from a verified token.
type Principal struct {
	Username    string
	Authorities []string
}

func PrincipalFromClaims(c *Claims) Principal {
	return Principal{
		Username:    c.Subject,
		Authorities: []string{c.Role},
	}
}

func (p Principal) HasAuthority(authority string) bool {
	return slices.Contains(p.Authorities, authority)
}

// Role returns the single granted authority.
func (p Principal) Role() string {
	if len(p.Authorities) == 0 {
		return ""
	}
	return p.Authorities[0]
}

type principalKey struct{}

func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
