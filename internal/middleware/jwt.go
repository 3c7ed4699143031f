package middleware

import (
	"context"  // Request scoped lookups
	"errors"   // Error kind matching
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"household_ledger/internal/domain" // Domain models
	"household_ledger/internal/ledger" // Error kinds

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // User identifiers
	"github.com/sirupsen/logrus" // Structured logging
)

// Context keys set by JWTAuthMiddleware
const (
	UserIDKey = "userID"
	UserKey   = "user"
)

// Authenticator resolves a bearer token to the user it was issued for
type Authenticator interface {
	ResolveUser(ctx context.Context, token string) (*domain.User, error)
}

// JWTAuthMiddleware validates bearer tokens and stores the caller in the context
func JWTAuthMiddleware(authn Authenticator, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Expect "Authorization: Bearer <token>"
		scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "Not authenticated")
			return
		}
		user, err := authn.ResolveUser(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, ledger.ErrUnauthorized) {
				abortUnauthorized(c, "Could not validate credentials")
				return
			}
			// Storage failure while loading the user
			log.WithFields(logrus.Fields{"path": c.FullPath(), "error": err.Error()}).Error("Failed to resolve user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.Set(UserIDKey, user.ID) // Store userID in context
		c.Set(UserKey, user)      // Store the loaded user for handlers that return it
		c.Next()                  // Proceed to the next handler
	}
}

// UserID returns the authenticated caller's id
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// CurrentUser returns the authenticated caller
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
