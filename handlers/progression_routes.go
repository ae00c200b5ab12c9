// handlers/progression_routes.go
package handlers

import (
	"errors"

	"progression-service/middleware"
	"progression-service/models"
	"progression-service/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SetupProgressionRoutes mounts the facade behind the gateway-forwarded
// user context. The gateway maps /api/v1/progression/s/... -> /s/...
func SetupProgressionRoutes(app *fiber.App, facade *services.ProgressionFacade) {
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Post("/user/task-complete", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Priority models.Priority         `json:"priority" validate:"required,oneof=low medium high urgent"`
			IsOnTime bool                    `json:"is_on_time"`
			Activity models.ActivitySnapshot `json:"activity"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		res, err := facade.ProcessTaskCompletion(userID, req.Priority, req.IsOnTime, req.Activity)
		if err != nil {
			return internalError(c, err)
		}
		return c.JSON(res)
	})

	secured.Post("/user/daily-login", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		res, err := facade.ProcessDailyLogin(userID)
		if err != nil {
			return internalError(c, err)
		}
		return c.JSON(res)
	})

	secured.Post("/user/shop/purchase", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			ItemID string `json:"item_id" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		res, err := facade.PurchaseItem(userID, req.ItemID)
		switch {
		case errors.Is(err, services.ErrUnknownItem):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
		case errors.Is(err, services.ErrItemOwned):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "item already owned"})
		case errors.Is(err, services.ErrMaxFreezesReached):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "maximum freeze charges equipped"})
		case errors.Is(err, services.ErrInsufficientFunds):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "not enough mind gems"})
		case err != nil:
			return internalError(c, err)
		}
		return c.JSON(res)
	})

	secured.Post("/user/streak/repair", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		res, err := facade.RepairStreak(userID)
		switch {
		case errors.Is(err, services.ErrNoValidOffer):
			return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": "no valid repair offer"})
		case errors.Is(err, services.ErrInsufficientFunds):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "not enough mind gems"})
		case err != nil:
			return internalError(c, err)
		}
		return c.JSON(res)
	})

	secured.Get("/user/summary", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		summary, err := facade.GetSummary(userID)
		if err != nil {
			return internalError(c, err)
		}
		return c.JSON(summary)
	})

	secured.Get("/user/achievements", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		achievements, err := facade.ListAchievements(userID)
		if err != nil {
			return internalError(c, err)
		}
		return c.JSON(achievements)
	})

	secured.Get("/shop/items", func(c *fiber.Ctx) error {
		return c.JSON(models.ShopCatalog)
	})

	// Admin endpoints
	admin := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireRole("admin"))

	admin.Post("/xp/grant", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"user_id" validate:"required"`
			XP     int    `json:"xp" validate:"required,min=1"`
			Reason string `json:"reason" validate:"max=255"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		res, err := facade.GrantXP(req.UserID, req.XP, req.Reason)
		if err != nil {
			return internalError(c, err)
		}
		return c.JSON(res)
	})

	admin.Post("/progression/reset", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"user_id" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validate.Struct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if err := facade.ResetProgression(req.UserID); err != nil {
			return internalError(c, err)
		}
		return c.JSON(fiber.Map{"message": "progression reset", "user_id": req.UserID})
	})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
		"cause": err.Error(),
	})
}
