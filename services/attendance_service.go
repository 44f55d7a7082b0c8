package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"markbook_go/models"
	"markbook_go/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxBatchSize bounds the cost of one markAttendance request.
const MaxBatchSize = 200

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

var dateFormatRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AttendanceService owns the attendance ledger: the bulk write path and the
// scoped per-day/per-month reads.
type AttendanceService struct {
	DB *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{DB: db}
}

// MarkRecord is one incoming batch entry. The student may be referenced
// under either field name; both are treated as synonyms.
type MarkRecord struct {
	ID        int    `json:"id"`
	StudentID int    `json:"student_id"`
	Status    string `json:"status"`
}

// SkippedDetail explains why a batch entry was not written. The reason for
// out-of-scope ids is deliberately generic so a teacher cannot probe which
// ids exist under other subjects.
type SkippedDetail struct {
	RecordIndex int    `json:"recordIndex"`
	Reason      string `json:"reason"`
}

// MarkResult summarizes one processed batch.
type MarkResult struct {
	Total          int
	Marked         int
	Skipped        int
	SkippedDetails []SkippedDetail
}

// pendingRecord is a structurally valid entry awaiting the scope check.
type pendingRecord struct {
	index     int
	studentID uint
	status    string
}

// normalizeRecords coerces the id synonyms into one canonical shape and
// partitions the batch into structurally valid entries and skips.
func normalizeRecords(records []MarkRecord) ([]pendingRecord, []SkippedDetail) {
	var pending []pendingRecord
	var skipped []SkippedDetail

	for i, r := range records {
		id := r.StudentID
		if id == 0 {
			id = r.ID
		}
		status, ok := utils.NormalizeStatus(r.Status)
		if id <= 0 || !ok {
			skipped = append(skipped, SkippedDetail{RecordIndex: i, Reason: "Missing ID or invalid status"})
			continue
		}
		pending = append(pending, pendingRecord{index: i, studentID: uint(id), status: status})
	}
	return pending, skipped
}

// validateMarkDate checks calendar-date syntax and that the value is a real
// date, before any database work.
func validateMarkDate(date string) (time.Time, error) {
	if !dateFormatRe.MatchString(date) {
		return time.Time{}, newValidationError("Invalid date format or value. Use YYYY-MM-DD")
	}
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, newValidationError("Invalid date format or value. Use YYYY-MM-DD")
	}
	return day, nil
}

// MarkAttendance upserts every valid record of a batch for one date inside
// a single transaction and reports what was written.
//
// Scope membership is checked with one set-membership query for the whole
// batch, never one round trip per record. Records that fail the check are
// skipped and counted; any unexpected database error rolls the whole batch
// back.
func (s *AttendanceService) MarkAttendance(teacherEmail, date string, records []MarkRecord) (*MarkResult, error) {
	day, err := validateMarkDate(date)
	if err != nil {
		return nil, err
	}
	if len(records) > MaxBatchSize {
		return nil, newValidationError(fmt.Sprintf("Too many records in one request (limit %d)", MaxBatchSize))
	}

	pending, skipped := normalizeRecords(records)
	result := &MarkResult{
		Total:          len(records),
		Skipped:        len(skipped),
		SkippedDetails: skipped,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		subject, err := resolveTeacherSubject(tx, teacherEmail)
		if err != nil {
			return err
		}

		validIDs := make(map[uint]bool)
		if len(pending) > 0 {
			ids := make([]uint, 0, len(pending))
			for _, p := range pending {
				ids = append(ids, p.studentID)
			}
			var found []uint
			if err := tx.Model(&models.Student{}).
				Where("id IN ? AND LOWER(subject) = LOWER(?)", ids, subject).
				Pluck("id", &found).Error; err != nil {
				return err
			}
			for _, id := range found {
				validIDs[id] = true
			}
		}

		for _, p := range pending {
			if !validIDs[p.studentID] {
				result.Skipped++
				result.SkippedDetails = append(result.SkippedDetails, SkippedDetail{
					RecordIndex: p.index,
					Reason:      "Student ID not found or not in your subject",
				})
				continue
			}

			att := models.Attendance{
				StudentID: p.studentID,
				Date:      day,
				Status:    p.status,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
			}).Create(&att).Error; err != nil {
				return err
			}
			result.Marked++
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return result, nil
}

// DailyEntry is one roster row: students with no mark for the day carry a
// nil status, which is distinct from ABSENT.
type DailyEntry struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	RollNum int     `json:"roll_num"`
	Status  *string `json:"status"`
}

// DailyAttendance returns every student in the teacher's subject left-joined
// with the given date's mark, ordered by roll number. An empty date means
// today.
func (s *AttendanceService) DailyAttendance(teacherEmail, date string) (string, []DailyEntry, error) {
	if date == "" {
		date = time.Now().Format(dateLayout)
	}
	if _, err := validateMarkDate(date); err != nil {
		return "", nil, err
	}

	subject, err := resolveTeacherSubject(s.DB, teacherEmail)
	if err != nil {
		return "", nil, err
	}

	entries := []DailyEntry{}
	err = s.DB.Table("student s").
		Select("s.id, s.name, s.roll_num, a.status").
		Joins("LEFT JOIN attendance a ON a.student_id = s.id AND a.date = ?", date).
		Where("LOWER(s.subject) = LOWER(?)", subject).
		Order("s.roll_num ASC").
		Scan(&entries).Error
	if err != nil {
		return "", nil, err
	}

	return date, entries, nil
}

// CalendarEntry is one marked day in a student's month view.
type CalendarEntry struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// AttendanceCalendar returns the caller's own marks for one month, ascending
// by date. The student is always resolved from the account email; callers
// never supply a student id.
func (s *AttendanceService) AttendanceCalendar(studentEmail, month string) (string, []CalendarEntry, error) {
	month, err := monthOrCurrent(month)
	if err != nil {
		return "", nil, err
	}

	student, err := resolveStudent(s.DB, studentEmail)
	if err != nil {
		return "", nil, err
	}

	var rows []models.Attendance
	err = s.DB.Where("student_id = ? AND DATE_FORMAT(date, '%Y-%m') = ?", student.ID, month).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return "", nil, err
	}

	entries := make([]CalendarEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, CalendarEntry{
			Date:   r.Date.Format(dateLayout),
			Status: r.Status,
		})
	}
	return month, entries, nil
}

// resolveTeacherSubject looks up the caller's subject scope from their own
// profile. Client-supplied subjects are never trusted.
func resolveTeacherSubject(db *gorm.DB, email string) (string, error) {
	var teacher models.Teacher
	if err := db.Where("email = ?", email).First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrTeacherNotFound
		}
		return "", err
	}
	return teacher.Subject, nil
}

// resolveStudent looks up the caller's own student profile by account email.
func resolveStudent(db *gorm.DB, email string) (*models.Student, error) {
	var student models.Student
	if err := db.Where("email = ?", email).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

// monthOrCurrent validates a YYYY-MM month, defaulting to the current month.
func monthOrCurrent(month string) (string, error) {
	if month == "" {
		return time.Now().Format(monthLayout), nil
	}
	if _, err := time.Parse(monthLayout, month); err != nil {
		return "", newValidationError("Invalid month format. Use YYYY-MM")
	}
	return month, nil
}
