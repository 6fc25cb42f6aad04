package export

import (
	"encoding/csv"
	"io"
	"strings"

	"ms-attendance/internal/models"
)

var attendanceHeader = []string{"Student ID", "Student Name", "Attendance Status (Y/N)"}

// sanitizeCell neutralises spreadsheet formula injection. A cell starting
// with =, +, - or @ would be evaluated by Excel and friends on open.
func sanitizeCell(value string) string {
	if strings.HasPrefix(value, "=") ||
		strings.HasPrefix(value, "+") ||
		strings.HasPrefix(value, "-") ||
		strings.HasPrefix(value, "@") {
		return "'" + value
	}
	return value
}

// WriteAttendanceCSV writes the attendance sheet for one event. Every cell
// passes through sanitizeCell since student names and ids are user input.
func WriteAttendanceCSV(w io.Writer, rows []models.AttendanceRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(attendanceHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			sanitizeCell(row.StudentID),
			sanitizeCell(row.Name),
			sanitizeCell(row.Attended),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
