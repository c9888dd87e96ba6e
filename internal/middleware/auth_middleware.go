package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/inventory_api/internal/utils"
)

const (
	ctxClaims  = "claims"
	ctxOwnerID = "owner_id"
)

// Authenticator validates an access token against its live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.Claims, error)
}

// SessionMiddleware gates routes on a valid token backed by a live session.
type SessionMiddleware struct {
	auth Authenticator
}

// NewSessionMiddleware constructs a new SessionMiddleware.
func NewSessionMiddleware(auth Authenticator) *SessionMiddleware {
	return &SessionMiddleware{auth: auth}
}

// Handle returns a Gin middleware that reads the token from the
// Authorization header.
func (m *SessionMiddleware) Handle() gin.HandlerFunc {
	return m.handle(false)
}

// HandleStream is Handle for event streams. EventSource can't set headers,
// so the token query parameter is accepted as well. Use it on stream routes
// only; anywhere else the token would leak into URLs and access logs.
func (m *SessionMiddleware) HandleStream() gin.HandlerFunc {
	return m.handle(true)
}

func (m *SessionMiddleware) handle(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && allowQuery {
			token = c.Query("token")
		}
		if token == "" {
			utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.ErrorFrom(c, err)
			c.Abort()
			return
		}

		c.Set(ctxClaims, claims)
		c.Set(ctxOwnerID, claims.UserID)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// OwnerID returns the authenticated owner from context.
func OwnerID(c *gin.Context) string {
	return c.GetString(ctxOwnerID)
}

// GetClaims returns the authenticated token claims from context.
func GetClaims(c *gin.Context) *utils.Claims {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}
