package controllers

import (
	"errors"
	"strconv"

	"markbook_go/middleware"
	"markbook_go/services"

	"github.com/gofiber/fiber/v2"
)

type TeacherController struct {
	Roster *services.RosterService
}

func NewTeacherController(roster *services.RosterService) *TeacherController {
	return &TeacherController{Roster: roster}
}

// TeacherDetails returns the caller's own teacher profile
func (tc *TeacherController) TeacherDetails(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	teacher, err := tc.Roster.TeacherDetails(claims.Email)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": fiber.Map{
			"name":    teacher.Name,
			"id_code": teacher.ID,
			"email":   teacher.Email,
			"subject": teacher.Subject,
		},
	})
}

// AddStudentRequest enrolls a student under the caller's subject
type AddStudentRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Subject  string `json:"subject" validate:"required,max=50"`
	RollNum  int    `json:"roll_num" validate:"required,gt=0"`
}

// AddStudent creates a student account and profile
func (tc *TeacherController) AddStudent(c *fiber.Ctx) error {
	var req AddStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Validation failed", "error": err.Error()})
	}

	err := tc.Roster.AddStudent(services.NewStudent{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Subject:  req.Subject,
		RollNum:  req.RollNum,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) || errors.Is(err, services.ErrRollNumTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return mapServiceError(c, err)
	}

	middleware.LogActivity(c, "CREATE", "student", 0, fiber.Map{"email": req.Email, "roll_num": req.RollNum})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "register successful"})
}

// DeleteStudent removes a student, their attendance, and their account
func (tc *TeacherController) DeleteStudent(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID"})
	}

	deleted, err := tc.Roster.DeleteStudent(claims.Email, uint(id))
	if err != nil {
		return mapServiceError(c, err)
	}

	middleware.LogActivity(c, "DELETE", "student", deleted.ID, fiber.Map{"email": deleted.Email})

	return c.JSON(fiber.Map{
		"message": "Student deleted successfully",
		"student": deleted,
	})
}
