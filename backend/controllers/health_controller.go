package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"quizmaster/backend/utils"
)

type HealthController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewHealthController(db *gorm.DB, logger *log.Logger) *HealthController {
	return &HealthController{DB: db, Logger: logger}
}

func (hc *HealthController) HealthCheck(c *fiber.Ctx) error {
	if err := utils.PingDB(hc.DB); err != nil {
		hc.Logger.Printf("health check: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": "down",
		})
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": "up",
	})
}
