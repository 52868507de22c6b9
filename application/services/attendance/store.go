package attendance

import (
	"context"
	"errors"

	"attendly.io/application/repository"
	"attendly.io/entities"
	"attendly.io/infrastructure/database/repository/mongo"
)

// mongoRecordStore adapts the Attendances repository to RecordStore,
// translating unique-index violations into ErrDuplicateRecord.
type mongoRecordStore struct{}

func (mongoRecordStore) FindByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*entities.Attendance, error) {
	return repository.AttendanceRepo().FindOneByFilter(ctx, map[string]interface{}{
		"employeeID": employeeID,
		"date":       date,
		"deletedAt":  nil,
	})
}

func (mongoRecordStore) Insert(ctx context.Context, record entities.Attendance) (*entities.Attendance, error) {
	saved, err := repository.AttendanceRepo().CreateOne(ctx, record)
	if errors.Is(err, mongo.ErrDuplicateKey) {
		return nil, ErrDuplicateRecord
	}
	return saved, err
}

func (mongoRecordStore) Update(ctx context.Context, record *entities.Attendance) error {
	parsed := record.ParseModel().(*entities.Attendance)
	_, err := repository.AttendanceRepo().UpdatePartialByFilter(ctx, map[string]interface{}{
		"_id": parsed.ID,
	}, map[string]interface{}{
		"checkIn":           parsed.CheckIn,
		"checkOut":          parsed.CheckOut,
		"status":            parsed.Status,
		"workedHours":       parsed.WorkedHours,
		"overtimeHours":     parsed.OvertimeHours,
		"isManualEntry":     parsed.IsManualEntry,
		"manualEntryReason": parsed.ManualEntryReason,
		"manualEntryBy":     parsed.ManualEntryBy,
		"locationVerified":  parsed.LocationVerified,
		"updatedAt":         parsed.UpdatedAt,
	})
	return err
}

// mongoDirectory adapts the employee directory for the engine.
type mongoDirectory struct{}

func (mongoDirectory) Find(ctx context.Context, employeeID string) (*entities.Employee, error) {
	return repository.EmployeeDirectory{}.Find(ctx, employeeID)
}
