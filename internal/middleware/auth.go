package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/saborconecta/backend/internal/apperr"
	"github.com/saborconecta/backend/internal/models"
)

// UserIDKey is the context key under which an authenticated caller's id is
// stored.
const UserIDKey = "user_id"

// UserResolver confirms a token's subject maps to an active account.
type UserResolver interface {
	ResolveUser(ctx context.Context, userID string) (*models.User, error)
}

// OptionalAuth validates a Bearer token when one is present. A valid token
// binds the request to the token's user, overriding any userId in the body; a
// missing header falls through so the handler can identify the caller from
// the payload. An invalid token is always rejected.
func OptionalAuth(jwtSecret string, resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || token == "" {
			apperr.Fail(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		userID, err := parseUserID(token, jwtSecret)
		if err != nil {
			apperr.Fail(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		user, err := resolver.ResolveUser(c.Request.Context(), userID)
		if err != nil {
			apperr.Fail(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID.String())
		c.Next()
	}
}

func parseUserID(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("invalid token claims")
	}
	return userID, nil
}

// AuthenticatedUserID returns the user id bound by OptionalAuth, if any.
func AuthenticatedUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
