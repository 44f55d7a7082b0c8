package services

import (
	"testing"
	"time"
)

func TestNormalizeRecords(t *testing.T) {
	records := []MarkRecord{
		{StudentID: 1, Status: "PRESENT"},
		{ID: 2, Status: "absent"},
		{StudentID: 3, ID: 99, Status: "Late"},
		{Status: "PRESENT"},
		{StudentID: 4, Status: "HOLIDAY"},
		{StudentID: -5, Status: "PRESENT"},
		{StudentID: 6, Status: ""},
	}

	pending, skipped := normalizeRecords(records)

	if len(pending) != 3 {
		t.Fatalf("expected 3 pending records, got %d", len(pending))
	}
	if len(skipped) != 4 {
		t.Fatalf("expected 4 skipped records, got %d", len(skipped))
	}

	// student_id wins over id when both are present
	if pending[2].studentID != 3 {
		t.Fatalf("expected student_id synonym to win, got %d", pending[2].studentID)
	}
	// statuses are canonically upper-case
	if pending[1].status != "ABSENT" || pending[2].status != "LATE" {
		t.Fatalf("statuses not normalized: %q %q", pending[1].status, pending[2].status)
	}
	// skip reasons stay generic and indexed
	for _, s := range skipped {
		if s.Reason != "Missing ID or invalid status" {
			t.Fatalf("unexpected skip reason: %q", s.Reason)
		}
	}
	if skipped[0].RecordIndex != 3 {
		t.Fatalf("expected first skip at index 3, got %d", skipped[0].RecordIndex)
	}
}

func TestNormalizeRecordsIDFallback(t *testing.T) {
	pending, skipped := normalizeRecords([]MarkRecord{{ID: 7, Status: "leave"}})
	if len(skipped) != 0 || len(pending) != 1 {
		t.Fatalf("expected single pending record, got pending=%d skipped=%d", len(pending), len(skipped))
	}
	if pending[0].studentID != 7 || pending[0].status != "LEAVE" {
		t.Fatalf("unexpected pending record: %+v", pending[0])
	}
}

func TestValidateMarkDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2024-05-01"},
		{name: "leap day", input: "2024-02-29"},
		{name: "not a real date", input: "2024-02-31", wantErr: true},
		{name: "wrong separator", input: "2024/05/01", wantErr: true},
		{name: "missing zero padding", input: "2024-5-1", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "trailing junk", input: "2024-05-01x", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			day, err := validateMarkDate(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				if !IsValidation(err) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if day.Format("2006-01-02") != tc.input {
				t.Fatalf("parsed day %v does not round-trip %q", day, tc.input)
			}
		})
	}
}

func TestMonthOrCurrent(t *testing.T) {
	if month, err := monthOrCurrent(""); err != nil || month != time.Now().Format("2006-01") {
		t.Fatalf("expected current month default, got %q (%v)", month, err)
	}
	if month, err := monthOrCurrent("2024-05"); err != nil || month != "2024-05" {
		t.Fatalf("expected passthrough, got %q (%v)", month, err)
	}
	for _, bad := range []string{"2024-13", "2024-5", "May 2024", "2024-05-01"} {
		if _, err := monthOrCurrent(bad); err == nil || !IsValidation(err) {
			t.Fatalf("expected validation error for %q, got %v", bad, err)
		}
	}
}

// Oversized batches and malformed dates must be refused before the service
// touches the database; a nil DB handle proves no query was attempted.
func TestMarkAttendanceRejectsBeforeDatabase(t *testing.T) {
	s := NewAttendanceService(nil)

	records := make([]MarkRecord, MaxBatchSize+1)
	for i := range records {
		records[i] = MarkRecord{StudentID: i + 1, Status: "PRESENT"}
	}
	if _, err := s.MarkAttendance("t@example.com", "2024-05-01", records); err == nil || !IsValidation(err) {
		t.Fatalf("expected wholesale rejection of oversized batch, got %v", err)
	}

	if _, err := s.MarkAttendance("t@example.com", "01-05-2024", nil); err == nil || !IsValidation(err) {
		t.Fatalf("expected rejection of malformed date, got %v", err)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	if !IsNotFound(ErrTeacherNotFound) || !IsNotFound(ErrStudentNotFound) || !IsNotFound(ErrStudentOutOfScope) {
		t.Fatal("not-found sentinels not recognized")
	}
	if IsNotFound(ErrEmailTaken) {
		t.Fatal("conflict error misclassified as not-found")
	}
	if !IsValidation(newValidationError("bad")) {
		t.Fatal("validation error not recognized")
	}
	if IsValidation(ErrTeacherNotFound) {
		t.Fatal("sentinel misclassified as validation error")
	}
}
