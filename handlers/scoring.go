// handlers/scoring.go
package handlers

import (
	"gym-scoring-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupScoringRoutes(app *fiber.App, scores *services.ScoreService, rankings *services.RankingService,
	stats *services.StatsService, results *services.ResultsService) {
	secured := app.Group("/s")

	secured.Post("/sessions/:id/scores", func(c *fiber.Ctx) error {
		var in services.ScoreInput
		if err := parseBody(c, &in); err != nil {
			return respondError(c, err)
		}
		entry, err := scores.SubmitScore(c.UserContext(), actor(c), c.Params("id"), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"score": entry,
			"final": services.FormatScore(entry.Final),
		})
	})

	secured.Get("/sessions/:id/rankings/:apparatus", func(c *fiber.Ctx) error {
		ranking, err := rankings.ApparatusRanking(c.UserContext(), actor(c), c.Params("id"), c.Params("apparatus"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(ranking)
	})

	secured.Get("/sessions/:id/all-around", func(c *fiber.Ctx) error {
		ranking, err := rankings.AllAroundRanking(c.UserContext(), actor(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(ranking)
	})

	secured.Post("/sessions/:id/results/publish", func(c *fiber.Ctx) error {
		published, err := results.Publish(c.UserContext(), actor(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(published)
	})

	secured.Get("/participants/:id/stats", func(c *fiber.Ctx) error {
		summary, err := stats.ParticipantStats(c.UserContext(), actor(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(summary)
	})
}
