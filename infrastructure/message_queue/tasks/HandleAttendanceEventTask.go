package queue_tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"attendly.io/application/constants"
	"attendly.io/application/repository"
	"attendly.io/infrastructure/logger"
	"attendly.io/infrastructure/messaging/emails"
	mq_types "attendly.io/infrastructure/message_queue/types"
	"github.com/hibiken/asynq"
)

const HandleAttendanceEventTaskName mq_types.Queues = "attendance_event"

type AttendanceEventPayload struct {
	EmployeeID string         `json:"employeeID"`
	Event      string         `json:"event"`
	Payload    map[string]any `json:"payload"`
}

// HandleAttendanceEventTask delivers the notification for a committed
// attendance transition. Delivery is best effort; the transition has
// already been committed by the time this runs.
func HandleAttendanceEventTask(ctx context.Context, t *asynq.Task) error {
	var payload AttendanceEventPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("malformed attendance event payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil // not retryable
	}

	employee, err := repository.EmployeeDirectory{}.Find(ctx, payload.EmployeeID)
	if err != nil {
		logger.Warning("attendance event for unknown employee", logger.LoggerOptions{
			Key:  "employeeID",
			Data: payload.EmployeeID,
		})
		return nil
	}
	if employee.Email == nil {
		return nil
	}

	subject, body := renderAttendanceEvent(payload)
	emails.SendEmail(*employee.Email, subject, body)
	return nil
}

func renderAttendanceEvent(payload AttendanceEventPayload) (string, string) {
	switch payload.Event {
	case constants.ATTENDANCE_CHECKED_IN:
		return "Checked in", fmt.Sprintf("You checked in at %v on %v.", payload.Payload["time"], payload.Payload["date"])
	case constants.ATTENDANCE_CHECKED_OUT:
		return "Checked out", fmt.Sprintf("You checked out at %v. Hours worked: %v.", payload.Payload["time"], payload.Payload["hours"])
	case constants.ATTENDANCE_MANUAL_ENTRY:
		return "Attendance updated", fmt.Sprintf("A manual %v entry was recorded for %v.", payload.Payload["kind"], payload.Payload["date"])
	default:
		return "Attendance update", "Your attendance record was updated."
	}
}
