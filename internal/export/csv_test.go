package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-attendance/internal/export"
	"ms-attendance/internal/models"
)

func TestWriteAttendanceCSV(t *testing.T) {
	rows := []models.AttendanceRow{
		{StudentID: "S001", Name: "Amara Perera", Attended: "Y"},
		{StudentID: "S002", Name: "Kasun Silva", Attended: "N"},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteAttendanceCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Student ID", "Student Name", "Attendance Status (Y/N)"}, records[0])
	assert.Equal(t, []string{"S001", "Amara Perera", "Y"}, records[1])
}

func TestWriteAttendanceCSVSanitisesFormulas(t *testing.T) {
	rows := []models.AttendanceRow{
		{StudentID: "=1+1", Name: "@cmd", Attended: "Y"},
		{StudentID: "S002", Name: "-Kasun", Attended: "N"},
		{StudentID: "S003", Name: "+Silva", Attended: "N"},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteAttendanceCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "'=1+1", records[1][0])
	assert.Equal(t, "'@cmd", records[1][1])
	assert.Equal(t, "'-Kasun", records[2][1])
	assert.Equal(t, "'+Silva", records[3][1])
}

func TestWriteAttendanceCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteAttendanceCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1) // header only
}
