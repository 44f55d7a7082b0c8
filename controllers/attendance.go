package controllers

import (
	"markbook_go/middleware"
	"markbook_go/services"

	"github.com/gofiber/fiber/v2"
)

type AttendanceController struct {
	Ledger *services.AttendanceService
}

func NewAttendanceController(ledger *services.AttendanceService) *AttendanceController {
	return &AttendanceController{Ledger: ledger}
}

// MarkAttendanceRequest is one batch of marks for a date
type MarkAttendanceRequest struct {
	Date    string                `json:"date"`
	Records []services.MarkRecord `json:"records"`
}

// MarkAttendance upserts a batch of attendance records for the caller's
// subject
func (ac *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Date == "" || req.Records == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := ac.Ledger.MarkAttendance(claims.Email, req.Date, req.Records)
	if err != nil {
		return mapServiceError(c, err)
	}

	middleware.LogActivity(c, "MARK", "attendance", 0, fiber.Map{
		"date":   req.Date,
		"total":  result.Total,
		"marked": result.Marked,
	})

	resp := fiber.Map{
		"message": "Attendance processing completed",
		"summary": fiber.Map{
			"total":   result.Total,
			"marked":  result.Marked,
			"skipped": result.Skipped,
		},
	}
	if result.Skipped > 0 {
		resp["skippedDetails"] = result.SkippedDetails
	}
	return c.JSON(resp)
}

// DailyAttendance returns the full roster for a date, unmarked students
// included with a null status
func (ac *AttendanceController) DailyAttendance(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	date, students, err := ac.Ledger.DailyAttendance(claims.Email, c.Query("date"))
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"date":     date,
		"students": students,
	})
}
