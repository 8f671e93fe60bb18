package middleware

import (
	"strings"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"
	"wallet-service/pkg/apperror"
	"wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Stage is one step of the authorization pipeline. It returns nil to admit
// the request or the error to reject it with.
type Stage func(c *gin.Context) *apperror.AppError

// Pipeline runs stages in order. The first rejection is written to the
// client and the rest of the chain, handler included, is skipped.
func Pipeline(stages ...Stage) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, stage := range stages {
			if err := stage(c); err != nil {
				response.Abort(c, err)
				return
			}
		}
		c.Next()
	}
}

// DebugOptions controls diagnostic detail in invalid_token responses.
type DebugOptions struct {
	Enabled bool
	Secret  string // only its last characters are ever shown
}

const (
	debugHint        = "Partial samples shown for debugging"
	signingAlgorithm = "HS256"
)

// Authenticate verifies the bearer token and stores the caller's identity
// under CtxIdentity.
func Authenticate(tokenSvc ports.TokenService, debug DebugOptions, log zerolog.Logger) Stage {
	return func(c *gin.Context) *apperror.AppError {
		fields := strings.Fields(c.GetHeader("Authorization"))
		if len(fields) != 2 || fields[0] != "Bearer" {
			return apperror.ErrMissingAuthorization()
		}
		token := fields[1]

		identity, err := tokenSvc.Validate(token)
		if err != nil {
			log.Warn().
				Err(err).
				Str("path", c.Request.URL.Path).
				Str("request_id", c.GetString(CtxRequestID)).
				Msg("token validation failed")

			if !debug.Enabled {
				return apperror.ErrInvalidToken("Token verification failed")
			}
			return apperror.ErrInvalidToken(gin.H{
				"validation_error": err.Error(),
				"token_sample":     sample(token, 8),
				"secret_sample":    sample(debug.Secret, 4),
				"algorithm":        signingAlgorithm,
			}).WithDebugInfo(debugHint)
		}

		c.Set(CtxIdentity, identity)
		return nil
	}
}

// RequireRoles admits identities holding at least one of roles. An empty
// role list admits any authenticated caller.
func RequireRoles(roles ...domain.Role) Stage {
	required := domain.NewRoleSet(roles...)
	return func(c *gin.Context) *apperror.AppError {
		identity, ok := IdentityFrom(c)
		if !ok {
			return apperror.ErrAuthenticationRequired()
		}
		if required.Len() == 0 || identity.Roles.Intersects(required) {
			return nil
		}
		return apperror.ErrInsufficientPermissions()
	}
}

// IdentityFrom returns the identity attached by Authenticate.
func IdentityFrom(c *gin.Context) (*domain.Identity, bool) {
	v, exists := c.Get(CtxIdentity)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*domain.Identity)
	return identity, ok && identity != nil
}

// sample returns "..." plus the last n runes of s, or "[redacted]" when s
// is too short to hide anything.
func sample(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return "[redacted]"
	}
	return "..." + string(r[len(r)-n:])
}
