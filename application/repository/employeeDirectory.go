package repository

import (
	"context"
	"errors"

	"attendly.io/entities"
)

// ErrEmployeeNotFound is returned by directory lookups for unknown IDs.
var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeDirectory is the read-side view of the employee collection the
// attendance core consumes: identity, active status, assigned site and
// schedule. It satisfies the directory interfaces declared by the face
// recognition and attendance services.
type EmployeeDirectory struct{}

func (EmployeeDirectory) Find(ctx context.Context, employeeID string) (*entities.Employee, error) {
	employee, err := EmployeeRepo().FindOneByFilter(ctx, map[string]interface{}{
		"_id":       employeeID,
		"deletedAt": nil,
	})
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

func (d EmployeeDirectory) IsActive(ctx context.Context, employeeID string) (bool, error) {
	employee, err := d.Find(ctx, employeeID)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return false, nil
		}
		return false, err
	}
	return employee.Active, nil
}
