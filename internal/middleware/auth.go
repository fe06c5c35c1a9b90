package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"velora.id/homeserve/internal/model"
	"velora.id/homeserve/internal/service"
	"velora.id/homeserve/pkg/response"
)

type AuthMiddleware struct {
	resolver service.RoleResolver
	secret   string
}

func NewAuthMiddleware(resolver service.RoleResolver, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
		secret:   secret,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Next()
	}
}

// RequireRoles resolves the caller's role set on every request and aborts
// unless it holds at least one of the given roles. The resolved set is
// stored for handlers that need it.
func (m *AuthMiddleware) RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := response.GetUserID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		roleSet, err := m.resolver.RolesOf(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}

		if !roleSet.HasAny(roles...) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			c.Abort()
			return
		}

		c.Set("roles", roleSet)
		c.Next()
	}
}

// RequireAdmin is shorthand for RequireRoles(admin).
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRoles(model.RoleAdmin)
}

// RolesFromContext returns the role set stashed by RequireRoles, resolving
// it on demand when the handler sits behind RequireAuth only.
func (m *AuthMiddleware) RolesFromContext(c *gin.Context) (service.RoleSet, error) {
	if stored, exists := c.Get("roles"); exists {
		if roleSet, ok := stored.(service.RoleSet); ok {
			return roleSet, nil
		}
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		return nil, err
	}
	return m.resolver.RolesOf(c.Request.Context(), userID)
}
