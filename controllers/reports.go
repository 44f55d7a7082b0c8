package controllers

import (
	"markbook_go/middleware"
	"markbook_go/services"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

// Stats returns today's attendance breakdown for the caller's subject
func (rc *ReportController) Stats(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	stats, err := rc.Reports.Stats(claims.Email)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"subject":       stats.Subject,
		"total_student": stats.TotalStudent,
		"today":         stats.Today,
	})
}

// Attendance75 lists students under the 75 percent all-time cutoff
func (rc *ReportController) Attendance75(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	report, err := rc.Reports.Attendance75(claims.Email)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(report)
}

// AttendanceDetails returns one month's per-status counts per student
func (rc *ReportController) AttendanceDetails(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	report, err := rc.Reports.AttendanceDetails(claims.Email, c.Query("month"))
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(report)
}

// ExportAttendanceDetails downloads the month report as an Excel workbook
func (rc *ReportController) ExportAttendanceDetails(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	buf, filename, err := rc.Reports.ExportMonthlyDetails(claims.Email, c.Query("month"))
	if err != nil {
		return mapServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
