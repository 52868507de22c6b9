package attendance

import (
	"context"

	"attendly.io/application/repository"
	"attendly.io/application/utils"
	"attendly.io/entities"
	"attendly.io/infrastructure/database/repository/mongo"
)

// DayStatus is the live snapshot of an employee's attendance for today.
type DayStatus struct {
	CheckedIn    bool                      `json:"checkedIn"`
	CheckedOut   bool                      `json:"checkedOut"`
	CheckInTime  *string                   `json:"checkInTime"`
	CheckOutTime *string                   `json:"checkOutTime"`
	WorkedHours  float64                   `json:"workedHours"`
	Status       entities.AttendanceStatus `json:"status"`
}

// Status reports today's snapshot for an employee.
func (e *Engine) Status(ctx context.Context, employeeID string) (*DayStatus, error) {
	date := e.dateOf(e.now())
	record, err := e.records.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	status := &DayStatus{Status: entities.StatusAbsent}
	if record == nil {
		return status, nil
	}
	status.Status = record.Status
	if record.CheckIn != nil {
		status.CheckedIn = true
		formatted := record.CheckIn.Time.In(e.cfg.TimeLocation()).Format("15:04:05")
		status.CheckInTime = &formatted
	}
	if record.CheckOut != nil {
		status.CheckedOut = true
		formatted := record.CheckOut.Time.In(e.cfg.TimeLocation()).Format("15:04:05")
		status.CheckOutTime = &formatted
	}
	if record.WorkedHours != nil {
		status.WorkedHours = *record.WorkedHours
	}
	return status, nil
}

// HistoryFilter narrows a history or statistics query. Dates are inclusive
// 2006-01-02 strings; zero values mean unbounded.
type HistoryFilter struct {
	DateFrom string
	DateTo   string
	Status   entities.AttendanceStatus
}

func historyQuery(employeeID string, filter HistoryFilter) map[string]interface{} {
	query := map[string]interface{}{
		"employeeID": employeeID,
		"deletedAt":  nil,
	}
	dateRange := map[string]interface{}{}
	if filter.DateFrom != "" {
		dateRange["$gte"] = filter.DateFrom
	}
	if filter.DateTo != "" {
		dateRange["$lte"] = filter.DateTo
	}
	if len(dateRange) != 0 {
		query["date"] = dateRange
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return query
}

// History lists an employee's attendance rows, newest first.
func (e *Engine) History(ctx context.Context, employeeID string, filter HistoryFilter) ([]entities.Attendance, error) {
	var sort interface{} = map[string]interface{}{"date": -1}
	return repository.AttendanceRepo().FindMany(ctx, historyQuery(employeeID, filter), mongo.FindOptions{
		Sort: &sort,
	})
}

// RangeStatistics aggregates an employee's attendance over a period.
type RangeStatistics struct {
	TotalDays          int     `json:"totalDays"`
	PresentDays        int     `json:"presentDays"`
	AbsentDays         int     `json:"absentDays"`
	LateDays           int     `json:"lateDays"`
	EarlyDepartures    int     `json:"earlyDepartures"`
	TotalWorkedHours   float64 `json:"totalWorkedHours"`
	TotalOvertimeHours float64 `json:"totalOvertimeHours"`
	AttendanceRate     float64 `json:"attendanceRate"`
}

// Statistics aggregates counts and hour totals over the filtered rows.
func (e *Engine) Statistics(ctx context.Context, employeeID string, filter HistoryFilter) (*RangeStatistics, error) {
	records, err := repository.AttendanceRepo().FindMany(ctx, historyQuery(employeeID, filter))
	if err != nil {
		return nil, err
	}

	stats := &RangeStatistics{TotalDays: len(records)}
	for _, record := range records {
		if record.CheckIn != nil {
			stats.PresentDays++
		} else {
			stats.AbsentDays++
		}
		if record.Status == entities.StatusLate {
			stats.LateDays++
		}
		if record.Status == entities.StatusEarlyDeparture {
			stats.EarlyDepartures++
		}
		if record.WorkedHours != nil {
			stats.TotalWorkedHours += *record.WorkedHours
		}
		if record.OvertimeHours != nil {
			stats.TotalOvertimeHours += *record.OvertimeHours
		}
	}
	stats.TotalWorkedHours = utils.RoundTo2DP(stats.TotalWorkedHours)
	stats.TotalOvertimeHours = utils.RoundTo2DP(stats.TotalOvertimeHours)
	if stats.TotalDays > 0 {
		stats.AttendanceRate = utils.RoundTo2DP(float64(stats.PresentDays) / float64(stats.TotalDays) * 100)
	}
	return stats, nil
}
