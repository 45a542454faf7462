// middleware/auth.go
package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthMiddleware requires a valid Bearer token and stores the caller's user
// id in locals.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing authorization header"})
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	userID, err := userIDFromClaims(claims)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	c.Locals("userId", userID)
	c.Locals("username", claims["username"])

	return c.Next()
}

// OptionalAuthMiddleware extracts the caller's identity when a valid token
// is present and lets anonymous (or invalid-token) requests through
// untouched. Handlers downstream decide what anonymous means.
func OptionalAuthMiddleware(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Next()
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		return c.Next()
	}

	if userID, err := userIDFromClaims(claims); err == nil {
		c.Locals("userId", userID)
		c.Locals("username", claims["username"])
	}

	return c.Next()
}

// GetUserID returns the authenticated user's id.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID := c.Locals("userId")
	if userID == nil {
		return uuid.Nil, fiber.NewError(401, "User not authenticated")
	}

	if id, ok := userID.(uuid.UUID); ok {
		return id, nil
	}

	return uuid.Nil, fiber.NewError(401, "Invalid user ID format")
}

// GetOptionalUserID returns the caller's id, or nil for anonymous requests.
func GetOptionalUserID(c *fiber.Ctx) *uuid.UUID {
	userID := c.Locals("userId")
	if userID == nil {
		return nil
	}

	if id, ok := userID.(uuid.UUID); ok {
		return &id
	}
	return nil
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	jwtSecret := os.Getenv("JWT_SECRET")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(401, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(401, "Invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, fiber.NewError(401, "Token expired")
	}

	return claims, nil
}

func userIDFromClaims(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, fiber.NewError(401, "Invalid token claims")
	}
	return uuid.Parse(sub)
}
