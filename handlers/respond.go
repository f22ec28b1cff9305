// handlers/respond.go
package handlers

import (
	"errors"
	"log"

	"gym-scoring-system/apperrors"
	"gym-scoring-system/middleware"
	"gym-scoring-system/models"
	"gym-scoring-system/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps typed service errors onto HTTP responses. Every body
// names the constraint that failed.
func respondError(c *fiber.Ctx, err error) error {
	var (
		denied   *apperrors.PermissionDenied
		missing  *apperrors.NotFound
		invalid  *apperrors.Validation
		mismatch *apperrors.ApprovalMismatch
		fiberErr *fiber.Error
	)
	switch {
	case errors.As(err, &denied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":  err.Error(),
			"code":   denied.Code(),
			"reason": denied.Reason,
			"action": denied.Action,
		})
	case errors.As(err, &mismatch):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":        err.Error(),
			"code":         mismatch.Code(),
			"expectedClub": mismatch.ExpectedClub,
		})
	case errors.As(err, &missing):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":  err.Error(),
			"code":   missing.Code(),
			"entity": missing.Entity,
			"id":     missing.ID,
		})
	case errors.As(err, &invalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      err.Error(),
			"code":       invalid.Code(),
			"field":      invalid.Field,
			"constraint": invalid.Constraint,
		})
	case errors.Is(err, services.ErrPublishingDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("❌ [HTTP] %s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
		"code":  apperrors.CodeUnknown,
	})
}

// parseBody decodes the JSON body into out, reporting malformed payloads as
// a validation failure on "body".
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidation("body", "must be valid JSON: "+err.Error())
	}
	return nil
}

func actor(c *fiber.Ctx) *models.Account {
	return middleware.CurrentAccount(c)
}
