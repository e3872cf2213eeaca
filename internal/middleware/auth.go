package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// OperatorTokenIssuer is the issuer claim of operator tokens.
const OperatorTokenIssuer = "trendsmith-api"

// IssueOperatorToken signs an HS256 token identifying operator, valid for ttl.
func IssueOperatorToken(secret, operator string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("operator token secret is empty")
	}
	if operator == "" {
		return "", errors.New("operator name is empty")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   operator,
		Issuer:    OperatorTokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// OperatorAuth requires a bearer operator token on mutating requests.
// Safe methods pass through. With an empty secret the middleware is a no-op.
func OperatorAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c, "Invalid authorization header format")
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		}, jwt.WithIssuer(OperatorTokenIssuer), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			return unauthorized(c, "Invalid or expired token")
		}

		if claims.Subject == "" {
			return unauthorized(c, "Invalid token structure - missing subject")
		}

		c.Locals("operator", claims.Subject)
		// Sync to UserContext for logging and downstream services
		c.SetUserContext(context.WithValue(c.UserContext(), OperatorKey, claims.Subject))
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msg,
		"code":  "UNAUTHORIZED",
	})
}
