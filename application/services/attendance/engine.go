package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendly.io/application/constants"
	"attendly.io/application/utils"
	"attendly.io/entities"
	"attendly.io/infrastructure/biometric/types"
	"attendly.io/infrastructure/config"
	"attendly.io/infrastructure/geofence"
	"attendly.io/infrastructure/metrics"
)

var (
	ErrEmployeeInactive   = errors.New("employee is not active")
	ErrVerificationFailed = errors.New("face verification failed")
	ErrOutOfGeofence      = errors.New("location is outside the allowed area")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrAlreadyCheckedOut  = errors.New("already checked out today")
	ErrNotCheckedIn       = errors.New("no check-in found for the day")

	// ErrDuplicateRecord is returned by RecordStore.Insert when the unique
	// (employeeID, date) index rejects a concurrent insert.
	ErrDuplicateRecord = errors.New("duplicate attendance record")
)

// ManualKind selects which half of the record a manual entry sets.
type ManualKind string

const (
	ManualCheckIn  ManualKind = "check_in"
	ManualCheckOut ManualKind = "check_out"
)

// RecordStore is the persistence boundary of the engine. The engine is the
// only writer of attendance rows.
type RecordStore interface {
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*entities.Attendance, error)
	Insert(ctx context.Context, record entities.Attendance) (*entities.Attendance, error)
	Update(ctx context.Context, record *entities.Attendance) error
}

// Directory is the slice of the employee collaborator the engine consumes.
type Directory interface {
	Find(ctx context.Context, employeeID string) (*entities.Employee, error)
}

// Notifier dispatches attendance events after a committed transition.
// Fire-and-forget: delivery failure never rolls back attendance.
type Notifier interface {
	AttendanceEvent(employeeID string, event string, payload map[string]any)
}

// Engine is the per-(employee, day) attendance state machine. Transitions
// for one key are serialized by a keyed mutex held across the whole
// read-decide-write sequence; the store's unique index closes the remaining
// cross-process window.
type Engine struct {
	records   RecordStore
	directory Directory
	notifier  Notifier
	cfg       config.AttendanceConfig
	geoCfg    geofence.Config
	locks     *keyedLocks

	// now is replaceable in tests
	now func() time.Time
}

// Service is the process-wide instance, assembled in startUp.
var Service *Engine

func NewEngine(records RecordStore, directory Directory, notifier Notifier, cfg config.AttendanceConfig, geoCfg geofence.Config) *Engine {
	return &Engine{
		records:   records,
		directory: directory,
		notifier:  notifier,
		cfg:       cfg,
		geoCfg:    geoCfg,
		locks:     newKeyedLocks(),
		now:       time.Now,
	}
}

func (e *Engine) dateOf(t time.Time) string {
	return t.In(e.cfg.TimeLocation()).Format(constants.DATE_LAYOUT)
}

func lockKey(employeeID string, date string) string {
	return employeeID + "|" + date
}

// CheckIn commits the NoRecord -> CheckedIn transition. The verification
// verdict must be Accepted and the capture point must fall inside the
// employee's geofence unless location verification is disabled for them.
func (e *Engine) CheckIn(ctx context.Context, employeeID string, verification *types.VerificationResult, point *geofence.GeoPoint) (*entities.Attendance, error) {
	employee, err := e.directory.Find(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !employee.Active {
		return nil, ErrEmployeeInactive
	}

	if verification == nil || verification.Verdict != types.VerdictAccepted {
		reason := types.ReasonNone
		if verification != nil {
			reason = verification.Reason
		}
		metrics.RecordTransition("check_in", "verification_failed")
		return nil, fmt.Errorf("%w: %s", ErrVerificationFailed, reason)
	}

	locationVerified, err := e.verifyLocation(employee, point)
	if err != nil {
		metrics.RecordTransition("check_in", "out_of_geofence")
		return nil, err
	}

	now := e.now().In(e.cfg.TimeLocation())
	date := now.Format(constants.DATE_LAYOUT)

	release := e.locks.Acquire(lockKey(employeeID, date))
	defer release()

	existing, err := e.records.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.CheckIn != nil {
		metrics.RecordTransition("check_in", "already_checked_in")
		return nil, ErrAlreadyCheckedIn
	}

	event := &entities.AttendanceEvent{
		Time:           now,
		Location:       point,
		FaceConfidence: utils.GetFloat64Pointer(verification.Similarity),
	}
	status := e.deriveCheckInStatus(now, employee)

	var saved *entities.Attendance
	if existing != nil {
		existing.CheckIn = event
		existing.Status = status
		existing.LocationVerified = locationVerified
		if err := e.records.Update(ctx, existing); err != nil {
			return nil, err
		}
		saved = existing
	} else {
		saved, err = e.records.Insert(ctx, entities.Attendance{
			EmployeeID:       employeeID,
			Date:             date,
			CheckIn:          event,
			Status:           status,
			LocationVerified: locationVerified,
		})
		if errors.Is(err, ErrDuplicateRecord) {
			// lost the cross-process race; one re-read settles it
			metrics.RecordTransition("check_in", "already_checked_in")
			return nil, ErrAlreadyCheckedIn
		}
		if err != nil {
			return nil, err
		}
	}

	metrics.RecordTransition("check_in", "committed")
	e.notify(employeeID, constants.ATTENDANCE_CHECKED_IN, map[string]any{
		"time":   now.Format("15:04"),
		"date":   date,
		"status": saved.Status,
	})
	return saved, nil
}

// CheckOut commits the CheckedIn -> CheckedOut transition and computes
// worked and overtime hours.
func (e *Engine) CheckOut(ctx context.Context, employeeID string, verification *types.VerificationResult, point *geofence.GeoPoint) (*entities.Attendance, error) {
	employee, err := e.directory.Find(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if verification == nil || verification.Verdict != types.VerdictAccepted {
		reason := types.ReasonNone
		if verification != nil {
			reason = verification.Reason
		}
		metrics.RecordTransition("check_out", "verification_failed")
		return nil, fmt.Errorf("%w: %s", ErrVerificationFailed, reason)
	}

	locationVerified, err := e.verifyLocation(employee, point)
	if err != nil {
		metrics.RecordTransition("check_out", "out_of_geofence")
		return nil, err
	}

	now := e.now().In(e.cfg.TimeLocation())
	date := now.Format(constants.DATE_LAYOUT)

	release := e.locks.Acquire(lockKey(employeeID, date))
	defer release()

	record, err := e.records.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if record == nil || record.CheckIn == nil {
		metrics.RecordTransition("check_out", "not_checked_in")
		return nil, ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		metrics.RecordTransition("check_out", "already_checked_out")
		return nil, ErrAlreadyCheckedOut
	}

	record.CheckOut = &entities.AttendanceEvent{
		Time:           now,
		Location:       point,
		FaceConfidence: utils.GetFloat64Pointer(verification.Similarity),
	}
	record.LocationVerified = record.LocationVerified && locationVerified
	e.settleCheckOut(record, employee)

	if err := e.records.Update(ctx, record); err != nil {
		return nil, err
	}

	metrics.RecordTransition("check_out", "committed")
	e.notify(employeeID, constants.ATTENDANCE_CHECKED_OUT, map[string]any{
		"time":  now.Format("15:04"),
		"date":  date,
		"hours": record.WorkedHours,
	})
	return record, nil
}

// ManualEntry lets a privileged approver set a check-in or check-out
// directly, bypassing face and geofence checks. The one-per-day invariants
// still hold, and the record carries the audit fields.
func (e *Engine) ManualEntry(ctx context.Context, employeeID string, kind ManualKind, timestamp time.Time, reason string, approverID string) (*entities.Attendance, error) {
	employee, err := e.directory.Find(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	at := timestamp.In(e.cfg.TimeLocation())
	date := at.Format(constants.DATE_LAYOUT)

	release := e.locks.Acquire(lockKey(employeeID, date))
	defer release()

	record, err := e.records.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	switch kind {
	case ManualCheckIn:
		if record != nil && record.CheckIn != nil {
			return nil, ErrAlreadyCheckedIn
		}
		event := &entities.AttendanceEvent{Time: at}
		status := e.deriveCheckInStatus(at, employee)
		if record != nil {
			record.CheckIn = event
			record.Status = status
			applyManualFields(record, reason, approverID)
			if err := e.records.Update(ctx, record); err != nil {
				return nil, err
			}
		} else {
			fresh := entities.Attendance{
				EmployeeID: employeeID,
				Date:       date,
				CheckIn:    event,
				Status:     status,
			}
			applyManualFields(&fresh, reason, approverID)
			record, err = e.records.Insert(ctx, fresh)
			if errors.Is(err, ErrDuplicateRecord) {
				return nil, ErrAlreadyCheckedIn
			}
			if err != nil {
				return nil, err
			}
		}

	case ManualCheckOut:
		if record == nil || record.CheckIn == nil {
			return nil, ErrNotCheckedIn
		}
		if record.CheckOut != nil {
			return nil, ErrAlreadyCheckedOut
		}
		record.CheckOut = &entities.AttendanceEvent{Time: at}
		applyManualFields(record, reason, approverID)
		e.settleCheckOut(record, employee)
		if err := e.records.Update(ctx, record); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unknown manual entry kind %q", kind)
	}

	metrics.RecordTransition("manual_"+string(kind), "committed")
	e.notify(employeeID, constants.ATTENDANCE_MANUAL_ENTRY, map[string]any{
		"kind": kind,
		"date": date,
	})
	return record, nil
}

func applyManualFields(record *entities.Attendance, reason string, approverID string) {
	record.IsManualEntry = true
	record.ManualEntryReason = &reason
	record.ManualEntryBy = &approverID
}

// verifyLocation returns whether the point was verified against the
// employee's geofence, or ErrOutOfGeofence when verification is required
// and fails.
func (e *Engine) verifyLocation(employee *entities.Employee, point *geofence.GeoPoint) (bool, error) {
	if employee.Location == nil || employee.LocationVerificationDisabled {
		return false, nil
	}
	if !e.cfg.RequireLocationVerification {
		if point != nil {
			return geofence.IsWithin(*point, *employee.Location, e.geoCfg), nil
		}
		return false, nil
	}
	if point == nil || !geofence.IsWithin(*point, *employee.Location, e.geoCfg) {
		return false, ErrOutOfGeofence
	}
	return true, nil
}

func (e *Engine) notify(employeeID string, event string, payload map[string]any) {
	if e.notifier == nil {
		return
	}
	e.notifier.AttendanceEvent(employeeID, event, payload)
}
