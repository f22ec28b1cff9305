// handlers/competitions.go
package handlers

import (
	"strings"

	"gym-scoring-system/models"
	"gym-scoring-system/services"

	"github.com/gofiber/fiber/v2"
)

type statusOverrideRequest struct {
	// Empty or null clears the override.
	Status *string `json:"status"`
}

func (r statusOverrideRequest) override() *models.Status {
	if r.Status == nil || strings.TrimSpace(*r.Status) == "" {
		return nil
	}
	s := models.Status(strings.ToLower(strings.TrimSpace(*r.Status)))
	return &s
}

type rosterRequest struct {
	Entries []services.RosterEntry `json:"entries" validate:"required,min=1"`
}

func SetupCompetitionRoutes(app *fiber.App, competitions *services.CompetitionService, roster *services.RosterService) {
	// 🔓 Public: apparatus catalog
	app.Get("/apparatus", func(c *fiber.Ctx) error {
		return c.JSON(models.ApparatusCatalog)
	})

	secured := app.Group("/s")

	// Competitions
	secured.Post("/competitions", func(c *fiber.Ctx) error {
		var in services.CompetitionInput
		if err := parseBody(c, &in); err != nil {
			return respondError(c, err)
		}
		comp, err := competitions.CreateCompetition(c.UserContext(), actor(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(comp)
	})

	secured.Get("/competitions", func(c *fiber.Ctx) error {
		status := models.Status(strings.ToLower(c.Query("status")))
		list, err := competitions.ListCompetitions(c.UserContext(), actor(c), status)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"competitions": list, "count": len(list)})
	})

	secured.Get("/competitions/:id", func(c *fiber.Ctx) error {
		comp, err := competitions.GetCompetition(c.UserContext(), actor(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(comp)
	})

	secured.Patch("/competitions/:id/status", func(c *fiber.Ctx) error {
		var req statusOverrideRequest
		if err := parseBody(c, &req); err != nil {
			return respondError(c, err)
		}
		comp, err := competitions.OverrideStatus(c.UserContext(), actor(c), c.Params("id"), req.override())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(comp)
	})

	// Sessions
	secured.Post("/competitions/:id/sessions", func(c *fiber.Ctx) error {
		var in services.SessionInput
		if err := parseBody(c, &in); err != nil {
			return respondError(c, err)
		}
		sess, err := competitions.CreateSession(c.UserContext(), actor(c), c.Params("id"), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sess)
	})

	secured.Patch("/sessions/:id/status", func(c *fiber.Ctx) error {
		var req statusOverrideRequest
		if err := parseBody(c, &req); err != nil {
			return respondError(c, err)
		}
		sess, err := competitions.OverrideSessionStatus(c.UserContext(), actor(c), c.Params("id"), req.override())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(sess)
	})

	secured.Get("/competitions/:id/sessions", func(c *fiber.Ctx) error {
		sessions, err := competitions.ListSessions(c.UserContext(), actor(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"sessions": sessions, "count": len(sessions)})
	})

	// Roster
	secured.Post("/sessions/:id/roster", func(c *fiber.Ctx) error {
		var req rosterRequest
		if err := parseBody(c, &req); err != nil {
			return respondError(c, err)
		}
		if err := services.Validate(req); err != nil {
			return respondError(c, err)
		}
		result, err := roster.SubmitRoster(c.UserContext(), actor(c), c.Params("id"), req.Entries)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	})

	secured.Get("/sessions/:id/roster", func(c *fiber.Ctx) error {
		participants, err := roster.SessionRoster(c.UserContext(), actor(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"participants": participants, "count": len(participants)})
	})
}
