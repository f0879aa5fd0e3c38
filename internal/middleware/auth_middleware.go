package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/auth"
)

const principalKey = "principal"

// Authenticator resolves a bearer token to the principal it was issued for
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Principal, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	authenticator Authenticator
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// tokenFromRequest reads the bearer token from the Authorization header.
// allowQuery also accepts the token query parameter when no header is sent,
// for websocket upgrades where browsers cannot set headers.
func tokenFromRequest(c *gin.Context, allowQuery bool) (string, bool, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if allowQuery {
			if token := c.Query("token"); token != "" {
				return token, true, nil
			}
		}
		return "", false, nil
	}
	token, err := auth.ExtractBearerToken(header)
	if err != nil {
		return "", true, apperrors.NewUnauthenticatedError("Invalid token format", apperrors.ErrTokenInvalid)
	}
	return token, true, nil
}

func (m *AuthMiddleware) attach(c *gin.Context, token string) error {
	principal, err := m.authenticator.Authenticate(c.Request.Context(), token)
	if err != nil {
		return err
	}
	c.Set(principalKey, principal)
	return nil
}

// Authenticate requires a valid bearer token in the Authorization header. It
// runs on every request; no session is kept.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return m.require(false)
}

// AuthenticateUpgrade is Authenticate for websocket upgrade routes. It also
// accepts the token query parameter.
func (m *AuthMiddleware) AuthenticateUpgrade() gin.HandlerFunc {
	return m.require(true)
}

func (m *AuthMiddleware) require(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, err := tokenFromRequest(c, allowQuery)
		if err == nil && !present {
			err = apperrors.NewUnauthenticatedError("Authentication required", apperrors.ErrTokenMissing)
		}
		if err == nil {
			err = m.attach(c, token)
		}
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuthenticate attaches a principal when a token is sent and lets
// anonymous requests through. A token that is sent but rejected still fails.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, err := tokenFromRequest(c, false)
		if err == nil && present {
			err = m.attach(c, token)
		}
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Authorize rejects principals whose role is not in roles. Must run after Authenticate.
func (m *AuthMiddleware) Authorize(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			HandleAPIError(c, apperrors.NewUnauthenticatedError("Authentication required", apperrors.ErrTokenMissing))
			c.Abort()
			return
		}
		for _, role := range roles {
			if principal.Role() == role {
				c.Next()
				return
			}
		}
		HandleAPIError(c, apperrors.NewForbiddenError("You don't have permission to perform this action"))
		c.Abort()
	}
}

// GetPrincipal returns the principal attached by Authenticate
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}
