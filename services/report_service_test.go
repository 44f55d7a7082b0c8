package services

import "testing"

func TestBuildBelowThreshold(t *testing.T) {
	rows := []attendanceTotalsRow{
		{ID: 1, Name: "A", RollNum: 1, TotalClasses: 20, PresentCount: 20},               // 100% - excluded
		{ID: 2, Name: "B", RollNum: 2, TotalClasses: 20, PresentCount: 15},               // 75% - excluded (boundary)
		{ID: 3, Name: "C", RollNum: 3, TotalClasses: 20, PresentCount: 14},               // 70%
		{ID: 4, Name: "D", RollNum: 4, TotalClasses: 0, PresentCount: 0},                 // never marked
		{ID: 5, Name: "E", RollNum: 5, TotalClasses: 10, PresentCount: 0, MonthTotal: 4}, // 0% with data
		{ID: 6, Name: "F", RollNum: 6, TotalClasses: 20, PresentCount: 10},               // 50%
	}

	students := buildBelowThreshold(rows, BelowThresholdCutoff)

	if len(students) != 4 {
		t.Fatalf("expected 4 students below threshold, got %d", len(students))
	}

	// Ascending by percentage, never-marked students ahead of 0% with data
	order := []uint{4, 5, 6, 3}
	for i, want := range order {
		if students[i].ID != want {
			t.Fatalf("position %d: expected student %d, got %d", i, want, students[i].ID)
		}
	}

	// Zero recorded classes reports percentage 0, not a missing value
	if students[0].TotalClasses != 0 || students[0].AttendancePercentage != 0 {
		t.Fatalf("never-marked student misreported: %+v", students[0])
	}

	// Current-month summary carries the same percentage policy
	if students[1].CurrentMonth.TotalClasses != 4 || students[1].CurrentMonth.AttendancePercentage != 0 {
		t.Fatalf("unexpected current month summary: %+v", students[1].CurrentMonth)
	}
}

func TestBuildBelowThresholdAllHealthy(t *testing.T) {
	rows := []attendanceTotalsRow{
		{ID: 1, TotalClasses: 10, PresentCount: 9},
		{ID: 2, TotalClasses: 10, PresentCount: 8},
	}
	if students := buildBelowThreshold(rows, BelowThresholdCutoff); len(students) != 0 {
		t.Fatalf("expected empty report, got %d students", len(students))
	}
}

func TestBuildMonthlyDetails(t *testing.T) {
	rows := []monthlyDetailRow{
		{ID: 1, Name: "A", RollNum: 1, Total: 20, Present: 15, Absent: 3, Late: 1, OnLeave: 1},
		{ID: 2, Name: "B", RollNum: 2, Total: 0},
		{ID: 3, Name: "C", RollNum: 3, Total: 3, Present: 2, Absent: 1},
	}

	students := buildMonthlyDetails(rows)

	if len(students) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(students))
	}
	if students[0].AttendancePercentage != 75 {
		t.Fatalf("expected 75, got %v", students[0].AttendancePercentage)
	}
	// No records in the month yields 0, never NaN or an error
	if students[1].TotalMarked != 0 || students[1].AttendancePercentage != 0 {
		t.Fatalf("zero-denominator row misreported: %+v", students[1])
	}
	if students[2].AttendancePercentage != 66.67 {
		t.Fatalf("expected 66.67, got %v", students[2].AttendancePercentage)
	}
}
