package domain

import "time"

// Scheduled action types
const (
	ActionPublish   = "publish"
	ActionUnpublish = "unpublish"
)

// Scheduled action statuses
const (
	ScheduleStatusPending   = "pending"
	ScheduleStatusClaimed   = "claimed"
	ScheduleStatusCompleted = "completed"
	ScheduleStatusCancelled = "cancelled"
	ScheduleStatusFailed    = "failed"
)

// ScheduledAction is the durable record of a scheduled publish or unpublish.
// The sweep claims a record by flipping status pending -> claimed before
// acting on it, so each due action is executed at most once.
type ScheduledAction struct {
	ID            uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ActionID      string     `gorm:"column:action_id;type:varchar(36);uniqueIndex" json:"action_id"`
	SpaceID       string     `gorm:"column:space_id;type:varchar(36);index" json:"space_id"`
	EnvironmentID uint64     `gorm:"column:environment_id" json:"environment_id"`
	EntryID       uint64     `gorm:"column:entry_id;index" json:"entry_id"`
	Action        string     `gorm:"column:action;type:varchar(16)" json:"action"`
	Status        string     `gorm:"column:status;type:varchar(16);default:'pending';index" json:"status"`
	ScheduledFor  time.Time  `gorm:"column:scheduled_for;index" json:"scheduled_for"`
	Timezone      string     `gorm:"column:timezone;type:varchar(64)" json:"timezone,omitempty"`
	ExecutedAt    *time.Time `gorm:"column:executed_at" json:"executed_at,omitempty"`
	Error         *string    `gorm:"column:error;type:text" json:"error,omitempty"`
	CreatedBy     uint64     `gorm:"column:created_by" json:"created_by"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ScheduledAction) TableName() string { return "scheduled_actions" }

// ToInfo returns the embeddable copy stored on the entry row
func (a *ScheduledAction) ToInfo() *ScheduledActionInfo {
	return &ScheduledActionInfo{
		ActionID:     a.ActionID,
		Action:       a.Action,
		ScheduledFor: a.ScheduledFor,
		Timezone:     a.Timezone,
	}
}

// IsTerminal reports whether the record can no longer change state
func (a *ScheduledAction) IsTerminal() bool {
	switch a.Status {
	case ScheduleStatusCompleted, ScheduleStatusCancelled, ScheduleStatusFailed:
		return true
	}
	return false
}

// ScheduleActionRequest is the payload for scheduling a publish or unpublish
type ScheduleActionRequest struct {
	Action       string    `json:"action" binding:"required,oneof=publish unpublish"`
	ScheduledFor time.Time `json:"scheduled_for" binding:"required"`
	Timezone     string    `json:"timezone,omitempty"`
}
