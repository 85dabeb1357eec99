package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

// LeaveApprovedEvent is published once per first transition into Approved.
// The outbox idempotence guard guarantees at most one row per application.
type LeaveApprovedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	LeaveID       string    `json:"leave_id"`
	EmployeeEmail string    `json:"employee_email"`
	LeaveType     string    `json:"leave_type"`
	NumberOfDays  int       `json:"number_of_days"`
	OccurredAt    time.Time `json:"occurred_at"`
}
