package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/feedbackform/feedback-backend/errors"
	"github.com/feedbackform/feedback-backend/types"
)

// Context keys for the verified identity.
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

// identityClaims are the claims extracted from a verified bearer token.
type identityClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// verifyBearer parses and verifies an HS256 bearer token from the
// Authorization header. It returns a zero identity when no token is present.
func verifyBearer(c *gin.Context, secret string) (types.Identity, bool, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return types.Identity{}, false, nil
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header || tokenString == "" {
		return types.Identity{}, false, fmt.Errorf("malformed authorization header")
	}

	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return types.Identity{}, false, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return types.Identity{}, false, fmt.Errorf("token missing subject")
	}

	return types.Identity{Subject: claims.Subject, Email: claims.Email}, true, nil
}

// OptionalIdentity verifies a bearer token when one is supplied and stores
// the identity in the context. Requests without a token pass through
// anonymously; requests with an invalid token are rejected.
func OptionalIdentity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		identity, ok, err := verifyBearer(c, secret)
		if err != nil {
			_ = c.Error(apperrors.AuthenticationFailed("Invalid token"))
			c.Abort()
			return
		}
		if ok {
			c.Set(UserIDKey, identity.Subject)
			c.Set(UserEmailKey, identity.Email)
		}
		c.Next()
	}
}

// RequireIdentity rejects requests without a valid bearer token.
func RequireIdentity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			_ = c.Error(apperrors.AuthenticationFailed("Identity verification is not configured"))
			c.Abort()
			return
		}
		identity, ok, err := verifyBearer(c, secret)
		if err != nil || !ok {
			_ = c.Error(apperrors.AuthenticationFailed("Invalid or missing token"))
			c.Abort()
			return
		}
		c.Set(UserIDKey, identity.Subject)
		c.Set(UserEmailKey, identity.Email)
		c.Next()
	}
}

// IdentityFromContext returns the identity stored by the auth middleware,
// zero-valued for anonymous requests.
func IdentityFromContext(c *gin.Context) types.Identity {
	return types.Identity{
		Subject: c.GetString(UserIDKey),
		Email:   c.GetString(UserEmailKey),
	}
}
