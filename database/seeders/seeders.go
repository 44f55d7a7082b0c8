package seeders

import (
	"log"
	"time"

	"markbook_go/database"
	"markbook_go/models"
	"markbook_go/utils"
)

// SeedAll runs all seeders
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedTeachers()
	SeedStudents()
	SeedAttendance()

	log.Println("Database seeding completed successfully!")
}

func mustHash(password string) string {
	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash seed password:", err)
	}
	return hash
}

// SeedTeachers seeds demo teacher accounts and profiles
func SeedTeachers() {
	var count int64
	database.DB.Model(&models.Teacher{}).Count(&count)
	if count > 0 {
		log.Println("Teachers already seeded, skipping...")
		return
	}

	teachers := []struct {
		Name    string
		Email   string
		Subject string
	}{
		{Name: "Asha Verma", Email: "asha.verma@markbook.test", Subject: "Math"},
		{Name: "Rahul Nair", Email: "rahul.nair@markbook.test", Subject: "Physics"},
	}

	for _, t := range teachers {
		database.DB.Create(&models.User{
			Name:         t.Name,
			Email:        t.Email,
			PasswordHash: mustHash("teachme123"),
			Role:         models.RoleTeacher,
		})
		database.DB.Create(&models.Teacher{
			Name:    t.Name,
			Email:   t.Email,
			Subject: t.Subject,
		})
	}

	log.Println("Seeded teachers")
}

// SeedStudents seeds demo student accounts and profiles
func SeedStudents() {
	var count int64
	database.DB.Model(&models.Student{}).Count(&count)
	if count > 0 {
		log.Println("Students already seeded, skipping...")
		return
	}

	students := []struct {
		Name    string
		Email   string
		Subject string
		RollNum int
	}{
		{Name: "Ishaan Gupta", Email: "ishaan.gupta@markbook.test", Subject: "Math", RollNum: 1},
		{Name: "Meera Pillai", Email: "meera.pillai@markbook.test", Subject: "Math", RollNum: 2},
		{Name: "Kabir Shah", Email: "kabir.shah@markbook.test", Subject: "Math", RollNum: 3},
		{Name: "Tara Iyer", Email: "tara.iyer@markbook.test", Subject: "Physics", RollNum: 4},
		{Name: "Dev Menon", Email: "dev.menon@markbook.test", Subject: "Physics", RollNum: 5},
	}

	for _, s := range students {
		database.DB.Create(&models.User{
			Name:         s.Name,
			Email:        s.Email,
			PasswordHash: mustHash("learnme123"),
			Role:         models.RoleStudent,
		})
		database.DB.Create(&models.Student{
			Name:    s.Name,
			Email:   s.Email,
			Subject: s.Subject,
			RollNum: s.RollNum,
		})
	}

	log.Println("Seeded students")
}

// SeedAttendance seeds two weeks of marks for the demo students
func SeedAttendance() {
	var count int64
	database.DB.Model(&models.Attendance{}).Count(&count)
	if count > 0 {
		log.Println("Attendance already seeded, skipping...")
		return
	}

	var students []models.Student
	if err := database.DB.Order("roll_num ASC").Find(&students).Error; err != nil {
		log.Println("Could not load students for attendance seed:", err)
		return
	}

	statuses := []string{
		models.StatusPresent, models.StatusPresent, models.StatusPresent,
		models.StatusAbsent, models.StatusLate, models.StatusLeave,
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	for dayOffset := 13; dayOffset >= 1; dayOffset-- {
		date := today.AddDate(0, 0, -dayOffset)
		// Skip weekends
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for i, s := range students {
			status := statuses[(dayOffset+i)%len(statuses)]
			database.DB.Create(&models.Attendance{
				StudentID: s.ID,
				Date:      date,
				Status:    status,
			})
		}
	}

	log.Println("Seeded attendance")
}
