package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAttendanceClockedIn      = "attendance.clocked_in"
	EventTypeAttendanceClockedOut     = "attendance.clocked_out"
	EventTypeLeaveRequestCreated      = "leave_request.created"
	EventTypeLeaveRequestStatusChange = "leave_request.status_changed"
)

// DomainEventTypes lists every event the application publishes.
var DomainEventTypes = []string{
	EventTypeAttendanceClockedIn,
	EventTypeAttendanceClockedOut,
	EventTypeLeaveRequestCreated,
	EventTypeLeaveRequestStatusChange,
}

func newBase(eventType string, at time.Time, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: at,
		Data:      data,
	}
}

type AttendanceClockedInEvent struct {
	BaseEvent
	RecordID string    `json:"record_id"`
	UserID   string    `json:"user_id"`
	ClockIn  time.Time `json:"clock_in"`
	Status   string    `json:"status"`
}

func NewAttendanceClockedInEvent(recordID, userID string, clockIn time.Time, status string) *AttendanceClockedInEvent {
	return &AttendanceClockedInEvent{
		BaseEvent: newBase(EventTypeAttendanceClockedIn, clockIn, map[string]interface{}{
			"record_id": recordID,
			"user_id":   userID,
			"clock_in":  clockIn,
			"status":    status,
		}),
		RecordID: recordID,
		UserID:   userID,
		ClockIn:  clockIn,
		Status:   status,
	}
}

type AttendanceClockedOutEvent struct {
	BaseEvent
	RecordID string        `json:"record_id"`
	UserID   string        `json:"user_id"`
	ClockOut time.Time     `json:"clock_out"`
	Worked   time.Duration `json:"worked"`
}

func NewAttendanceClockedOutEvent(recordID, userID string, clockIn, clockOut time.Time) *AttendanceClockedOutEvent {
	worked := clockOut.Sub(clockIn)
	return &AttendanceClockedOutEvent{
		BaseEvent: newBase(EventTypeAttendanceClockedOut, clockOut, map[string]interface{}{
			"record_id":      recordID,
			"user_id":        userID,
			"clock_out":      clockOut,
			"worked_seconds": int64(worked.Seconds()),
		}),
		RecordID: recordID,
		UserID:   userID,
		ClockOut: clockOut,
		Worked:   worked,
	}
}

type LeaveRequestCreatedEvent struct {
	BaseEvent
	RequestID string `json:"request_id"`
	UserID    string `json:"user_id"`
	LeaveType string `json:"leave_type"`
}

func NewLeaveRequestCreatedEvent(requestID, userID, leaveType string, at time.Time) *LeaveRequestCreatedEvent {
	return &LeaveRequestCreatedEvent{
		BaseEvent: newBase(EventTypeLeaveRequestCreated, at, map[string]interface{}{
			"request_id": requestID,
			"user_id":    userID,
			"leave_type": leaveType,
		}),
		RequestID: requestID,
		UserID:    userID,
		LeaveType: leaveType,
	}
}

type LeaveRequestStatusChangedEvent struct {
	BaseEvent
	RequestID string `json:"request_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	DecidedBy string `json:"decided_by"`
}

func NewLeaveRequestStatusChangedEvent(requestID, from, to, decidedBy string, at time.Time) *LeaveRequestStatusChangedEvent {
	return &LeaveRequestStatusChangedEvent{
		BaseEvent: newBase(EventTypeLeaveRequestStatusChange, at, map[string]interface{}{
			"request_id": requestID,
			"from":       from,
			"to":         to,
			"decided_by": decidedBy,
		}),
		RequestID: requestID,
		From:      from,
		To:        to,
		DecidedBy: decidedBy,
	}
}
