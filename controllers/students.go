package controllers

import (
	"markbook_go/database"
	"markbook_go/middleware"
	"markbook_go/models"
	"markbook_go/services"

	"github.com/gofiber/fiber/v2"
)

type StudentController struct {
	Ledger  *services.AttendanceService
	Reports *services.ReportService
}

func NewStudentController(ledger *services.AttendanceService, reports *services.ReportService) *StudentController {
	return &StudentController{Ledger: ledger, Reports: reports}
}

// StudentDetails returns the caller's own profile with an all-time
// attendance digest
func (sc *StudentController) StudentDetails(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var student models.Student
	if err := database.DB.Where("email = ?", claims.Email).First(&student).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": services.ErrStudentNotFound.Error()})
	}

	summary, err := sc.Reports.StudentAllTimeSummary(student.ID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": fiber.Map{
			"name":    student.Name,
			"id_code": student.ID,
			"subject": student.Subject,
			"roll_no": student.RollNum,
			"email":   student.Email,
		},
		"attendance": summary,
	})
}

// AttendanceCalendarRequest selects the month to view
type AttendanceCalendarRequest struct {
	Month string `json:"month"`
}

// AttendanceCalendar returns the caller's own marks for one month
func (sc *StudentController) AttendanceCalendar(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req AttendanceCalendarRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}

	month, calendar, err := sc.Ledger.AttendanceCalendar(claims.Email, req.Month)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"month":    month,
		"calendar": calendar,
	})
}

// AttendanceSummary returns one month's totals for the caller
func (sc *StudentController) AttendanceSummary(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	month, summary, err := sc.Reports.StudentMonthSummary(claims.Email, c.Query("month"))
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"month":                 month,
		"total_classes":         summary.TotalClasses,
		"present_count":         summary.PresentCount,
		"attendance_percentage": summary.AttendancePercentage,
	})
}
