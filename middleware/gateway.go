package middleware

import (
	"crypto/subtle"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GatewayAuthMiddleware rejects every request that does not carry the shared
// gateway token in its Authorization header.
func GatewayAuthMiddleware(expectedToken string) fiber.Handler {
	if expectedToken == "" {
		log.Fatal("❌ GATEWAY_TOKEN is not set, refusing to serve scoring traffic")
	}
	expected := []byte(expectedToken)

	return func(c *fiber.Ctx) error {
		presented, ok := gatewayToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			log.Printf("🚫 [GATEWAY_AUTH] %s %s arrived without a gateway token", c.Method(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "gateway authentication token missing",
			})
		}
		if subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
			log.Printf("❌ [GATEWAY_AUTH] %s %s presented a bad gateway token", c.Method(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid gateway authentication token",
			})
		}
		return c.Next()
	}
}

// gatewayToken extracts the token from an Authorization value. The gateway
// sends it either bare or with a bearer scheme in any letter case.
func gatewayToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	if scheme, rest, found := strings.Cut(header, " "); found && strings.EqualFold(scheme, "Bearer") {
		header = strings.TrimSpace(rest)
	}
	return header, header != ""
}
