package models

import (
	"database/sql/driver"
	"time"
)

// Roles carried in accounts and session tokens.
const (
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
)

// Attendance statuses, stored canonically upper-case.
const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusLeave   = "LEAVE"
)

// Base model with common fields. No soft deletes: removing a student must
// free its email and roll number for reuse, and the account cascade is a
// hard delete.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// User is the account record. One account per person, role fixed at
// creation. The password hash never serializes.
type User struct {
	BaseModel
	Name         string `json:"name" gorm:"size:100;not null"`
	Email        string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	Role         string `json:"role" gorm:"size:20;not null;type:enum('TEACHER','STUDENT')"`
}

func (User) TableName() string { return "users" }

// Teacher profile. Subject is the sole scoping boundary between teachers.
type Teacher struct {
	BaseModel
	Name    string `json:"name" gorm:"size:100;not null"`
	Email   string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Subject string `json:"subject" gorm:"size:100;not null"`
}

func (Teacher) TableName() string { return "teacher" }

// Student profile. RollNum is the human-facing identifier, distinct from ID.
type Student struct {
	BaseModel
	Name    string `json:"name" gorm:"size:100;not null"`
	Email   string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Subject string `json:"subject" gorm:"size:100;not null"`
	RollNum int    `json:"roll_num" gorm:"not null;uniqueIndex"`
}

func (Student) TableName() string { return "student" }

// Attendance is the ledger row: at most one status per student per
// calendar day, enforced by the composite unique index. Writes go through
// upsert only.
type Attendance struct {
	BaseModel
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_student_date"`
	Date      time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_student_date"`
	Status    string    `json:"status" gorm:"size:20;not null;type:enum('PRESENT','ABSENT','LATE','LEAVE')"`

	// Relationships
	Student Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

func (Attendance) TableName() string { return "attendance" }

// Log model for activity tracking
type ActivityLog struct {
	BaseModel
	UserEmail  string `json:"user_email" gorm:"size:255;index"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`
	RequestID  string `json:"request_id" gorm:"size:64"`
}
