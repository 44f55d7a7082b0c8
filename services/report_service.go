package services

import (
	"sort"
	"time"

	"markbook_go/utils"

	"gorm.io/gorm"
)

// BelowThresholdCutoff is the all-time percentage under which a student
// appears in the low-attendance report.
const BelowThresholdCutoff = 75.0

// ReportService is the read-side aggregation engine over the attendance
// ledger. Every query is scoped to the caller's subject; percentages follow
// one policy everywhere (utils.Percentage).
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// TodayStats breaks down today's marks for a subject. NotMarked counts
// enrolled students with no record today.
type TodayStats struct {
	Present   int `json:"present"`
	Absent    int `json:"absent"`
	Late      int `json:"late"`
	OnLeave   int `json:"on_leave"`
	NotMarked int `json:"not_marked"`
}

type TeacherStats struct {
	Subject      string     `json:"subject"`
	TotalStudent int        `json:"total_student"`
	Today        TodayStats `json:"today"`
}

type statsRow struct {
	TotalStudent int
	Present      int
	Absent       int
	Late         int
	OnLeave      int
	Marked       int
}

// Stats aggregates today's attendance for the teacher's subject in a single
// query. The left join keeps students with zero ledger rows in the count.
func (s *ReportService) Stats(teacherEmail string) (*TeacherStats, error) {
	subject, err := resolveTeacherSubject(s.DB, teacherEmail)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(dateLayout)

	var row statsRow
	err = s.DB.Table("student s").
		Select(`COUNT(DISTINCT s.id) AS total_student,
			COALESCE(SUM(a.status = 'PRESENT'), 0) AS present,
			COALESCE(SUM(a.status = 'ABSENT'), 0) AS absent,
			COALESCE(SUM(a.status = 'LATE'), 0) AS late,
			COALESCE(SUM(a.status = 'LEAVE'), 0) AS on_leave,
			COUNT(a.id) AS marked`).
		Joins("LEFT JOIN attendance a ON a.student_id = s.id AND a.date = ?", today).
		Where("LOWER(s.subject) = LOWER(?)", subject).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &TeacherStats{
		Subject:      subject,
		TotalStudent: row.TotalStudent,
		Today: TodayStats{
			Present:   row.Present,
			Absent:    row.Absent,
			Late:      row.Late,
			OnLeave:   row.OnLeave,
			NotMarked: row.TotalStudent - row.Marked,
		},
	}, nil
}

// attendanceTotalsRow is one student's all-time and current-month counters
// as scanned from the grouped aggregate.
type attendanceTotalsRow struct {
	ID           uint
	Name         string
	RollNum      int
	TotalClasses int
	PresentCount int
	MonthTotal   int
	MonthPresent int
}

// MonthSummary is one month's counters with the uniform percentage policy.
type MonthSummary struct {
	TotalClasses         int     `json:"total_classes"`
	PresentCount         int     `json:"present_count"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// BelowThresholdStudent is one row of the low-attendance report.
type BelowThresholdStudent struct {
	ID                   uint         `json:"id"`
	Name                 string       `json:"name"`
	RollNum              int          `json:"roll_num"`
	TotalClasses         int          `json:"total_classes"`
	PresentCount         int          `json:"present_count"`
	AttendancePercentage float64      `json:"attendance_percentage"`
	CurrentMonth         MonthSummary `json:"current_month"`
}

type BelowThresholdReport struct {
	Subject  string                  `json:"subject"`
	Count    int                     `json:"count"`
	Students []BelowThresholdStudent `json:"students"`
}

// Attendance75 lists every student in scope whose all-time attendance sits
// under 75 percent. Students with zero recorded classes are included at 0,
// surfacing never-marked students to the teacher.
func (s *ReportService) Attendance75(teacherEmail string) (*BelowThresholdReport, error) {
	subject, err := resolveTeacherSubject(s.DB, teacherEmail)
	if err != nil {
		return nil, err
	}

	month := time.Now().Format(monthLayout)

	var rows []attendanceTotalsRow
	err = s.DB.Table("student s").
		Select(`s.id, s.name, s.roll_num,
			COUNT(a.id) AS total_classes,
			COALESCE(SUM(a.status = 'PRESENT'), 0) AS present_count,
			COALESCE(SUM(DATE_FORMAT(a.date, '%Y-%m') = ?), 0) AS month_total,
			COALESCE(SUM(a.status = 'PRESENT' AND DATE_FORMAT(a.date, '%Y-%m') = ?), 0) AS month_present`,
			month, month).
		Joins("LEFT JOIN attendance a ON a.student_id = s.id").
		Where("LOWER(s.subject) = LOWER(?)", subject).
		Group("s.id, s.name, s.roll_num").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	students := buildBelowThreshold(rows, BelowThresholdCutoff)
	return &BelowThresholdReport{
		Subject:  subject,
		Count:    len(students),
		Students: students,
	}, nil
}

// buildBelowThreshold applies the percentage policy, filters on the
// all-time cutoff, and sorts ascending by percentage with no-data students
// first among equals.
func buildBelowThreshold(rows []attendanceTotalsRow, cutoff float64) []BelowThresholdStudent {
	students := make([]BelowThresholdStudent, 0, len(rows))
	for _, r := range rows {
		pct := utils.Percentage(r.PresentCount, r.TotalClasses)
		if pct >= cutoff {
			continue
		}
		students = append(students, BelowThresholdStudent{
			ID:                   r.ID,
			Name:                 r.Name,
			RollNum:              r.RollNum,
			TotalClasses:         r.TotalClasses,
			PresentCount:         r.PresentCount,
			AttendancePercentage: pct,
			CurrentMonth: MonthSummary{
				TotalClasses:         r.MonthTotal,
				PresentCount:         r.MonthPresent,
				AttendancePercentage: utils.Percentage(r.MonthPresent, r.MonthTotal),
			},
		})
	}

	sort.SliceStable(students, func(i, j int) bool {
		if students[i].AttendancePercentage != students[j].AttendancePercentage {
			return students[i].AttendancePercentage < students[j].AttendancePercentage
		}
		return students[i].TotalClasses < students[j].TotalClasses
	})
	return students
}

// monthlyDetailRow is one student's per-status counters for a month.
type monthlyDetailRow struct {
	ID      uint
	Name    string
	RollNum int
	Total   int
	Present int
	Absent  int
	Late    int
	OnLeave int
}

// MonthlyDetail is one row of the month report.
type MonthlyDetail struct {
	ID                   uint    `json:"id"`
	Name                 string  `json:"name"`
	RollNum              int     `json:"roll_num"`
	Present              int     `json:"present"`
	Absent               int     `json:"absent"`
	Late                 int     `json:"late"`
	OnLeave              int     `json:"on_leave"`
	TotalMarked          int     `json:"total_marked"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

type MonthlyDetailsReport struct {
	Subject  string          `json:"subject"`
	Month    string          `json:"month"`
	Count    int             `json:"count"`
	Students []MonthlyDetail `json:"students"`
}

// AttendanceDetails breaks one month down by status for every student in
// scope, ordered by roll number. An empty month means the current one.
func (s *ReportService) AttendanceDetails(teacherEmail, month string) (*MonthlyDetailsReport, error) {
	month, err := monthOrCurrent(month)
	if err != nil {
		return nil, err
	}

	subject, err := resolveTeacherSubject(s.DB, teacherEmail)
	if err != nil {
		return nil, err
	}

	var rows []monthlyDetailRow
	err = s.DB.Table("student s").
		Select(`s.id, s.name, s.roll_num,
			COUNT(a.id) AS total,
			COALESCE(SUM(a.status = 'PRESENT'), 0) AS present,
			COALESCE(SUM(a.status = 'ABSENT'), 0) AS absent,
			COALESCE(SUM(a.status = 'LATE'), 0) AS late,
			COALESCE(SUM(a.status = 'LEAVE'), 0) AS on_leave`).
		Joins("LEFT JOIN attendance a ON a.student_id = s.id AND DATE_FORMAT(a.date, '%Y-%m') = ?", month).
		Where("LOWER(s.subject) = LOWER(?)", subject).
		Group("s.id, s.name, s.roll_num").
		Order("s.roll_num ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	students := buildMonthlyDetails(rows)
	return &MonthlyDetailsReport{
		Subject:  subject,
		Month:    month,
		Count:    len(students),
		Students: students,
	}, nil
}

func buildMonthlyDetails(rows []monthlyDetailRow) []MonthlyDetail {
	students := make([]MonthlyDetail, 0, len(rows))
	for _, r := range rows {
		students = append(students, MonthlyDetail{
			ID:                   r.ID,
			Name:                 r.Name,
			RollNum:              r.RollNum,
			Present:              r.Present,
			Absent:               r.Absent,
			Late:                 r.Late,
			OnLeave:              r.OnLeave,
			TotalMarked:          r.Total,
			AttendancePercentage: utils.Percentage(r.Present, r.Total),
		})
	}
	return students
}

// StudentSummary is the all-time attendance digest shown on a student's own
// dashboard.
type StudentSummary struct {
	TotalAttendance   int     `json:"totalAttendance"`
	PresentAttendance int     `json:"presentAttendance"`
	AbsentAttendance  int     `json:"absentAttendance"`
	PresentPercentage float64 `json:"presentPercentage"`
	AbsentPercentage  float64 `json:"absentPercentage"`
}

type summaryRow struct {
	Total   int
	Present int
	Absent  int
}

// StudentAllTimeSummary aggregates a student's entire ledger history.
func (s *ReportService) StudentAllTimeSummary(studentID uint) (*StudentSummary, error) {
	var row summaryRow
	err := s.DB.Table("attendance").
		Select(`COUNT(id) AS total,
			COALESCE(SUM(status = 'PRESENT'), 0) AS present,
			COALESCE(SUM(status = 'ABSENT'), 0) AS absent`).
		Where("student_id = ?", studentID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &StudentSummary{
		TotalAttendance:   row.Total,
		PresentAttendance: row.Present,
		AbsentAttendance:  row.Absent,
		PresentPercentage: utils.Percentage(row.Present, row.Total),
		AbsentPercentage:  utils.Percentage(row.Absent, row.Total),
	}, nil
}

// StudentMonthSummary aggregates one month of a student's ledger. An empty
// month means the current one.
func (s *ReportService) StudentMonthSummary(studentEmail, month string) (string, *MonthSummary, error) {
	month, err := monthOrCurrent(month)
	if err != nil {
		return "", nil, err
	}

	student, err := resolveStudent(s.DB, studentEmail)
	if err != nil {
		return "", nil, err
	}

	var row summaryRow
	err = s.DB.Table("attendance").
		Select(`COUNT(id) AS total,
			COALESCE(SUM(status = 'PRESENT'), 0) AS present`).
		Where("student_id = ? AND DATE_FORMAT(date, '%Y-%m') = ?", student.ID, month).
		Scan(&row).Error
	if err != nil {
		return "", nil, err
	}

	return month, &MonthSummary{
		TotalClasses:         row.Total,
		PresentCount:         row.Present,
		AttendancePercentage: utils.Percentage(row.Present, row.Total),
	}, nil
}
