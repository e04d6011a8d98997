package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Middleware returns a fiber handler that rejects requests without a
// valid bearer token and stores the verified user id in locals. The
// verified id is the sole scoping key for every store query behind it.
// pool may be nil; when present, last_seen_at is updated best-effort.
func Middleware(tokens *Tokens, pool *pgxpool.Pool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization token not provided")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid Authorization header format")
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			if err == ErrTokenExpired {
				return fiber.NewError(fiber.StatusUnauthorized, "Token expired")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		c.Locals("user_id", userID)

		if pool != nil {
			go func(uid string) {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_, _ = pool.Exec(ctx, `UPDATE users SET last_seen_at = NOW() WHERE id = $1::uuid`, uid)
			}(userID)
		}

		return c.Next()
	}
}

// UserID extracts the authenticated user id placed by Middleware.
func UserID(c *fiber.Ctx) (string, bool) {
	uid, ok := c.Locals("user_id").(string)
	if !ok || strings.TrimSpace(uid) == "" {
		return "", false
	}
	return uid, true
}
