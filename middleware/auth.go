// middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"gym-scoring-system/apperrors"
	"gym-scoring-system/models"
	"gym-scoring-system/services"

	"github.com/gofiber/fiber/v2"
)

const accountKey = "account"

// AccountContextMiddleware resolves the X-User-ID header set by the Gateway
// into an Account. Secured routes (/s/...) require a known account; public
// routes pass through anonymously when the header is absent.
func AccountContextMiddleware(accounts services.AccountStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get("X-User-ID"))
		path := c.Path()
		secured := path == "/s" || strings.HasPrefix(path, "/s/")

		if userID == "" {
			if secured {
				log.Printf("❌ [ACCOUNT_CTX] X-User-ID required but missing on secured route: %s", path)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "missing X-User-ID: request must come through gateway with auth context",
				})
			}
			return c.Next()
		}

		account, err := accounts.GetAccount(c.UserContext(), userID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				if secured {
					log.Printf("❌ [ACCOUNT_CTX] Unknown account %s on %s", userID, path)
					return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
						"error": "unknown account",
					})
				}
				return c.Next()
			}
			log.Printf("❌ [ACCOUNT_CTX] Failed to load account %s: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load account",
			})
		}

		c.Locals(accountKey, account)
		return c.Next()
	}
}

// CurrentAccount returns the account resolved for this request, or nil.
func CurrentAccount(c *fiber.Ctx) *models.Account {
	account, _ := c.Locals(accountKey).(*models.Account)
	return account
}
