package routes

import (
	"markbook_go/controllers"
	"markbook_go/database"
	"markbook_go/middleware"
	"markbook_go/services"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App) {
	db := database.GetDB()

	ledger := services.NewAttendanceService(db)
	reports := services.NewReportService(db)
	roster := services.NewRosterService(db)

	authController := &controllers.AuthController{}
	teacherController := controllers.NewTeacherController(roster)
	attendanceController := controllers.NewAttendanceController(ledger)
	reportController := controllers.NewReportController(reports)
	studentController := controllers.NewStudentController(ledger, reports)

	api := app.Group("/api")

	// Authentication routes
	auth := api.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Get("/me", middleware.JWTMiddleware(), authController.Me)
	auth.Post("/logout", authController.Logout)

	// Teacher routes (TEACHER accounts only)
	teacher := api.Group("/teacher", middleware.TeacherRateLimiter(), middleware.JWTMiddleware(), middleware.RequireTeacher())
	teacher.Get("/teacherDetails", teacherController.TeacherDetails)
	teacher.Post("/addStudent", teacherController.AddStudent)
	teacher.Delete("/deleteStudent/:id", teacherController.DeleteStudent)
	teacher.Post("/markAttendance", attendanceController.MarkAttendance)
	teacher.Get("/dailyAttendance", attendanceController.DailyAttendance)
	teacher.Get("/stats", reportController.Stats)
	teacher.Get("/attendance75", reportController.Attendance75)
	teacher.Get("/attendanceDetails", reportController.AttendanceDetails)
	teacher.Get("/attendanceDetails/export", reportController.ExportAttendanceDetails)

	// Student routes (STUDENT accounts only)
	student := api.Group("/student", middleware.StudentRateLimiter(), middleware.JWTMiddleware(), middleware.RequireStudent())
	student.Get("/studentDetails", studentController.StudentDetails)
	student.Post("/attendanceCalendar", studentController.AttendanceCalendar)
	student.Get("/attendanceSummary", studentController.AttendanceSummary)
}
