// handlers/accounts.go
package handlers

import (
	"strings"

	"gym-scoring-system/apperrors"
	"gym-scoring-system/models"
	"gym-scoring-system/services"

	"github.com/gofiber/fiber/v2"
)

// registrationRequest is the flat wire form of every registration variant.
type registrationRequest struct {
	Role      string `json:"role"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	JudgeID     string `json:"judgeId"`
	DisplayName string `json:"displayName"`

	ClubName     string `json:"clubName"`
	ClubUsername string `json:"clubUsername"`
	Location     string `json:"location"`

	ClubAffiliation string `json:"clubAffiliation"`
}

// registration picks the variant for the requested role. Admins cannot
// self-register.
func (r registrationRequest) registration() (services.Registration, error) {
	id := services.Identity{Email: r.Email, FirstName: r.FirstName, LastName: r.LastName}
	switch models.Role(strings.ToLower(strings.TrimSpace(r.Role))) {
	case models.RoleObserver:
		return services.ObserverRegistration{Identity: id}, nil
	case models.RoleJudge:
		return services.JudgeRegistration{Identity: id, JudgeID: r.JudgeID, DisplayName: r.DisplayName}, nil
	case models.RoleClub:
		return services.ClubRegistration{Identity: id, ClubName: r.ClubName, ClubUsername: r.ClubUsername, Location: r.Location}, nil
	case models.RoleGymnast:
		return services.GymnastRegistration{Identity: id, ClubAffiliation: r.ClubAffiliation}, nil
	case models.RoleAdmin:
		return nil, apperrors.NewValidation("role", "admin accounts cannot self-register")
	case "":
		return nil, apperrors.NewValidation("role", "is required")
	}
	return nil, apperrors.NewValidation("role", "must be one of: observer judge club gymnast")
}

func SetupAccountRoutes(app *fiber.App, registration *services.RegistrationService, approvals *services.ApprovalService) {
	// 🔓 Public: self-registration
	app.Post("/accounts/register", func(c *fiber.Ctx) error {
		var req registrationRequest
		if err := parseBody(c, &req); err != nil {
			return respondError(c, err)
		}
		reg, err := req.registration()
		if err != nil {
			return respondError(c, err)
		}
		account, err := registration.Register(c.UserContext(), reg)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(account)
	})

	// 🔐 Approval workflow
	secured := app.Group("/s")

	secured.Get("/accounts/pending", func(c *fiber.Ctx) error {
		pending, err := approvals.ListPending(c.UserContext(), actor(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"accounts": pending, "count": len(pending)})
	})

	secured.Post("/accounts/:id/approve", func(c *fiber.Ctx) error {
		result, err := approvals.Approve(c.UserContext(), actor(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(result)
	})

	secured.Post("/accounts/:id/reject", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := approvals.Reject(c.UserContext(), actor(c), id); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "account rejected and removed", "id": id})
	})
}
