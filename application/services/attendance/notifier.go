package attendance

import (
	"encoding/json"

	"attendly.io/infrastructure/logger"
	messagequeue "attendly.io/infrastructure/message_queue"
	queue_tasks "attendly.io/infrastructure/message_queue/tasks"
	mq_types "attendly.io/infrastructure/message_queue/types"
)

// queueNotifier dispatches attendance events through the task queue.
// Enqueue problems are logged and swallowed: notification failure must
// never roll back a committed transition.
type queueNotifier struct{}

func (queueNotifier) AttendanceEvent(employeeID string, event string, payload map[string]any) {
	body, err := json.Marshal(queue_tasks.AttendanceEventPayload{
		EmployeeID: employeeID,
		Event:      event,
		Payload:    payload,
	})
	if err != nil {
		logger.Error("failed to encode attendance event", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleAttendanceEventTaskName,
		Payload:  body,
		Priority: mq_types.Low,
		MaxRetry: 3,
	})
}
