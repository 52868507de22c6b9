package attendance

import (
	"time"

	"attendly.io/application/constants"
	"attendly.io/application/utils"
	"attendly.io/entities"
)

// scheduleTimes resolves an employee's shift boundaries on a given day in
// the attendance timezone. ok is false when no schedule is configured or a
// time string does not parse.
func scheduleTimes(schedule *entities.WorkSchedule, day time.Time, loc *time.Location) (start time.Time, end time.Time, ok bool) {
	if schedule == nil {
		return time.Time{}, time.Time{}, false
	}
	startClock, err := time.Parse(constants.SCHEDULE_TIME_LAYOUT, schedule.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	endClock, err := time.Parse(constants.SCHEDULE_TIME_LAYOUT, schedule.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	year, month, dayOfMonth := day.In(loc).Date()
	start = time.Date(year, month, dayOfMonth, startClock.Hour(), startClock.Minute(), 0, 0, loc)
	end = time.Date(year, month, dayOfMonth, endClock.Hour(), endClock.Minute(), 0, 0, loc)
	return start, end, true
}

// deriveCheckInStatus marks a check-in late when it lands past shift start
// plus the grace window. Without a schedule everyone is present.
func (e *Engine) deriveCheckInStatus(at time.Time, employee *entities.Employee) entities.AttendanceStatus {
	start, _, ok := scheduleTimes(employee.Schedule, at, e.cfg.TimeLocation())
	if !ok {
		return entities.StatusPresent
	}
	if at.After(start.Add(time.Duration(e.cfg.GraceMinutes) * time.Minute)) {
		return entities.StatusLate
	}
	return entities.StatusPresent
}

// settleCheckOut computes worked and overtime hours and the final status on
// the record. Worked hours never go negative and never lose more than one
// break deduction; a check-out that precedes the check-in (clock skew)
// clamps to zero and flags the record incomplete.
func (e *Engine) settleCheckOut(record *entities.Attendance, employee *entities.Employee) {
	span := record.CheckOut.Time.Sub(record.CheckIn.Time)
	if span < 0 {
		record.WorkedHours = utils.GetFloat64Pointer(0)
		record.OvertimeHours = utils.GetFloat64Pointer(0)
		record.Status = entities.StatusIncomplete
		return
	}

	minutes := span.Minutes()
	if minutes > float64(e.cfg.MinimumMinutesForBreak) {
		minutes -= float64(e.cfg.BreakDurationMinutes)
		if minutes < 0 {
			minutes = 0
		}
	}
	worked := utils.RoundTo2DP(minutes / 60)
	record.WorkedHours = &worked

	start, end, ok := scheduleTimes(employee.Schedule, record.CheckOut.Time, e.cfg.TimeLocation())
	if ok {
		scheduled := end.Sub(start).Hours()
		overtime := utils.RoundTo2DP(maxFloat(0, worked-scheduled))
		record.OvertimeHours = &overtime

		threshold := end.Add(-time.Duration(e.cfg.EarlyDepartureMinutes) * time.Minute)
		if record.CheckOut.Time.Before(threshold) {
			record.Status = entities.StatusEarlyDeparture
		}
	} else {
		record.OvertimeHours = utils.GetFloat64Pointer(0)
	}
}

func maxFloat(a float64, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
