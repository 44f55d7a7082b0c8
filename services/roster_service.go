package services

import (
	"errors"
	"strings"

	"markbook_go/models"
	"markbook_go/utils"

	"gorm.io/gorm"
)

// RosterService manages the teacher-side roster: profile lookup, student
// enrollment, and removal with its attendance/account cascade.
type RosterService struct {
	DB *gorm.DB
}

func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{DB: db}
}

// TeacherDetails returns the caller's own teacher profile.
func (s *RosterService) TeacherDetails(email string) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := s.DB.Where("email = ?", email).First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return &teacher, nil
}

// NewStudent is a validated enrollment request.
type NewStudent struct {
	Name     string
	Email    string
	Password string
	Subject  string
	RollNum  int
}

// AddStudent creates the student's account and profile in one transaction.
// Unique-key collisions map to field-specific errors so an existing email
// and a taken roll number are reported distinctly.
func (s *RosterService) AddStudent(req NewStudent) error {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	name := utils.SanitizeString(req.Name)
	email := strings.ToLower(utils.SanitizeString(req.Email))
	subject := utils.SanitizeString(req.Subject)

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleStudent,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		student := models.Student{
			Name:    name,
			Email:   email,
			Subject: subject,
			RollNum: req.RollNum,
		}
		return tx.Create(&student).Error
	})
	if txErr != nil {
		if IsDuplicateKey(txErr) {
			if strings.Contains(txErr.Error(), "roll_num") {
				return ErrRollNumTaken
			}
			return ErrEmailTaken
		}
		return txErr
	}
	return nil
}

// DeletedStudent identifies the removed student.
type DeletedStudent struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// DeleteStudent removes a student's attendance records, profile, and account
// atomically. The student is resolved inside the same transaction as the
// deletes so a concurrent removal can never leave a partial cascade, and the
// lookup is subject-scoped: a student under another teacher's subject is
// indistinguishable from one that does not exist.
func (s *RosterService) DeleteStudent(teacherEmail string, studentID uint) (*DeletedStudent, error) {
	var deleted *DeletedStudent

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		subject, err := resolveTeacherSubject(tx, teacherEmail)
		if err != nil {
			return err
		}

		var student models.Student
		err = tx.Where("id = ? AND LOWER(subject) = LOWER(?)", studentID, subject).
			First(&student).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentOutOfScope
			}
			return err
		}

		if err := tx.Where("student_id = ?", student.ID).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&student).Error; err != nil {
			return err
		}
		if err := tx.Where("email = ?", student.Email).Delete(&models.User{}).Error; err != nil {
			return err
		}

		deleted = &DeletedStudent{ID: student.ID, Email: student.Email}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return deleted, nil
}

// IsDuplicateKey detects unique-constraint violations from the MySQL driver.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
