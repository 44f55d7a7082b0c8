package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportMonthlyDetails renders one month's per-student report as an .xlsx
// workbook, one row per student in roster order.
func (s *ReportService) ExportMonthlyDetails(teacherEmail, month string) (*bytes.Buffer, string, error) {
	report, err := s.AttendanceDetails(teacherEmail, month)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Roll No", "Name", "Present", "Absent", "Late", "On Leave", "Total Marked", "Attendance %"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	for rowIdx, st := range report.Students {
		values := []interface{}{
			st.RollNum, st.Name, st.Present, st.Absent, st.Late, st.OnLeave,
			st.TotalMarked, st.AttendancePercentage,
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", report.Subject, report.Month)
	return buf, filename, nil
}
