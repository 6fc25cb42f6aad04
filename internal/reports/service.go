package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"ms-attendance/internal/export"
	"ms-attendance/internal/logger"
	"ms-attendance/internal/models"
	"ms-attendance/internal/outcome"
	"ms-attendance/internal/reports/db"
)

type DBLayer interface {
	EventCounts(ctx context.Context, eventID int64) (*models.EventStats, error)
}

type AttendanceLister interface {
	EventAttendance(ctx context.Context, eventID int64) ([]models.AttendanceRow, error)
}

type ReportService struct {
	DB         DBLayer
	Attendance AttendanceLister
	Cache      *StatsCache
	Logger     *logger.Logger
}

func NewReportService(db DBLayer, attendance AttendanceLister, cache *StatsCache, log *logger.Logger) *ReportService {
	return &ReportService{DB: db, Attendance: attendance, Cache: cache, Logger: log}
}

// Statistics reports registration and attendance counts for an event with
// the attendance percentage rounded to two decimals. An event with no
// registrations reports 0, never a division error.
func (s *ReportService) Statistics(ctx context.Context, eventID int64) (*models.EventStats, outcome.Outcome) {
	if cached, err := s.Cache.Get(ctx, eventID); err == nil && cached != nil {
		return cached, outcome.Successf("statistics computed")
	} else if err != nil && s.Logger != nil {
		s.Logger.Warn("REPORTS", fmt.Sprintf("stats cache read for event %d: %v", eventID, err))
	}

	stats, err := s.DB.EventCounts(ctx, eventID)
	if err != nil {
		if errors.Is(err, db.ErrEventNotFound) {
			return nil, outcome.Errorf(outcome.NotFound, "event not found")
		}
		if s.Logger != nil {
			s.Logger.Error("REPORTS", fmt.Sprintf("stats for event %d: %v", eventID, err))
		}
		return nil, outcome.Unexpectedf(err)
	}

	if stats.Registered > 0 {
		pct := float64(stats.Attended) / float64(stats.Registered) * 100
		stats.Percentage = math.Round(pct*100) / 100
	}

	if err := s.Cache.Set(ctx, stats); err != nil && s.Logger != nil {
		s.Logger.Warn("REPORTS", fmt.Sprintf("stats cache write for event %d: %v", eventID, err))
	}
	return stats, outcome.Successf("statistics computed")
}

// ExportAttendance streams the event's attendance sheet as CSV.
func (s *ReportService) ExportAttendance(ctx context.Context, eventID int64, w io.Writer) outcome.Outcome {
	if _, err := s.DB.EventCounts(ctx, eventID); err != nil {
		if errors.Is(err, db.ErrEventNotFound) {
			return outcome.Errorf(outcome.NotFound, "event not found")
		}
		if s.Logger != nil {
			s.Logger.Error("REPORTS", fmt.Sprintf("export for event %d: %v", eventID, err))
		}
		return outcome.Unexpectedf(err)
	}

	rows, err := s.Attendance.EventAttendance(ctx, eventID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("REPORTS", fmt.Sprintf("export for event %d: %v", eventID, err))
		}
		return outcome.Unexpectedf(err)
	}

	if err := export.WriteAttendanceCSV(w, rows); err != nil {
		return outcome.Unexpectedf(err)
	}
	return outcome.Successf("attendance exported")
}
