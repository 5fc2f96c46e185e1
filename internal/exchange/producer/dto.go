package producer

import "time"

// Change actions carried in the feed.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// SegmentPayload is the wire form of one schedule segment.
type SegmentPayload struct {
	SegmentID     int64   `json:"segment_id"`
	DepartmentID  int64   `json:"department_id"`
	TeamMemberID  int64   `json:"team_member_id"`
	Date          string  `json:"date"`
	WorkType      string  `json:"work_type"`
	FoodPayment   string  `json:"food_payment"`
	ShiftStart    *string `json:"shift_start,omitempty"`
	ShiftEnd      *string `json:"shift_end,omitempty"`
	OvertimeStart *string `json:"overtime_start,omitempty"`
	OvertimeEnd   *string `json:"overtime_end,omitempty"`
}

// Envelope wraps a change event for external integrators.
type Envelope struct {
	Action    string         `json:"action"` // created | updated | deleted
	MessageID string         `json:"message_id"`
	Payload   SegmentPayload `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
	Source    string         `json:"source"`
}
