package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aurumlab/goldtrade/internal/adapter/authgw"
	"github.com/aurumlab/goldtrade/internal/domain/model"
)

// IdentityContextKey is a gin context key for the resolved caller identity.
const IdentityContextKey = "identity"

// CredentialValidator resolves a bearer credential to an identity.
type CredentialValidator interface {
	ValidateCredential(ctx context.Context, credential string) (*model.Identity, error)
}

// AuthRequired resolves the bearer credential through the auth gateway and
// stores the identity in the request context.
func AuthRequired(validator CredentialValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := extractCredential(c)
		if credential == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		identity, err := validator.ValidateCredential(c.Request.Context(), credential)
		if err != nil {
			if errors.Is(err, authgw.ErrInvalidCredential) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

func extractCredential(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
