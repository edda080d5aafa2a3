package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mantas/appointments/internal/apperrors"
	"github.com/mantas/appointments/internal/auth"
	"github.com/mantas/appointments/internal/authz"
	"github.com/mantas/appointments/internal/metrics"
	"github.com/rs/zerolog"
)

const PrincipalKey = "principal"

// AuthMiddleware attaches the principal of a valid bearer token. Requests
// without one continue unauthenticated; RoleGate decides what they may reach.
func AuthMiddleware(jwtService auth.Service, m *metrics.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			reason := "invalid"
			if auth.IsExpired(err) {
				reason = "expired"
			}
			m.RecordTokenRejection(reason)
			zerolog.Ctx(c.Request.Context()).Debug().Str("reason", reason).Msg("bearer token rejected")
			c.Next()
			return
		}

		p := auth.PrincipalFromClaims(claims)
		c.Set(PrincipalKey, p)
		c.Request = c.Request.WithContext(auth.NewContext(c.Request.Context(), p))

		c.Next()
	}
}

// Expect format: "Bearer <token>"
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RoleGate enforces policy before handlers run.
func RoleGate(policy *authz.Policy, m *metrics.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var principal *auth.Principal
		if p, ok := CurrentPrincipal(c); ok {
			principal = &p
		}

		decision := policy.Decide(c.Request.Method, c.Request.URL.Path, principal)
		m.RecordDecision(decision.String())

		switch decision {
		case authz.Unauthenticated:
			apperrors.Respond(c, apperrors.Unauthorized(""))
		case authz.Forbidden:
			apperrors.Respond(c, apperrors.Forbidden(""))
		default:
			c.Next()
		}
	}
}

func CurrentPrincipal(c *gin.Context) (auth.Principal, bool) {
	if v, ok := c.Get(PrincipalKey); ok {
		p, ok := v.(auth.Principal)
		return p, ok
	}
	return auth.FromContext(c.Request.Context())
}
