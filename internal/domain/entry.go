package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// EntryStatus is the lifecycle state of an entry
type EntryStatus string

const (
	StatusDraft     EntryStatus = "draft"
	StatusPublished EntryStatus = "published"
	StatusChanged   EntryStatus = "changed"
	StatusArchived  EntryStatus = "archived"
)

// FieldMap stores entry field data keyed by field ID, then locale code.
// Example: {"title": {"en-US": "Hello", "ko-KR": "안녕"}}
type FieldMap map[string]map[string]interface{}

// Scan implements sql.Scanner for JSON columns
func (m *FieldMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("failed to scan FieldMap: unsupported source type")
	}
	return json.Unmarshal(data, m)
}

// Value implements driver.Valuer for JSON columns
func (m FieldMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Clone returns a deep copy via JSON round-trip
func (m FieldMap) Clone() FieldMap {
	if m == nil {
		return nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	var out FieldMap
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

// ScheduledActionInfo is the copy of a pending scheduled action embedded on
// the entry row. It shares action_id with the durable scheduled_actions record.
type ScheduledActionInfo struct {
	ActionID     string    `json:"action_id"`
	Action       string    `json:"action"`
	ScheduledFor time.Time `json:"scheduled_for"`
	Timezone     string    `json:"timezone,omitempty"`
}

// Entry represents a content entry with its publication lifecycle state
type Entry struct {
	ID               uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SpaceID          string      `gorm:"column:space_id;type:varchar(36);index:idx_entries_space_env" json:"space_id"`
	EnvironmentID    uint64      `gorm:"column:environment_id;index:idx_entries_space_env" json:"environment_id"`
	ContentType      string      `gorm:"column:content_type;type:varchar(64);index" json:"content_type"`
	Fields           FieldMap    `gorm:"column:fields;type:json" json:"fields"`
	Status           EntryStatus `gorm:"column:status;type:varchar(16);default:'draft'" json:"status"`
	Version          uint        `gorm:"column:version;default:1" json:"version"`
	PublishedVersion *uint       `gorm:"column:published_version" json:"published_version,omitempty"`
	FirstPublishedAt *time.Time  `gorm:"column:first_published_at" json:"first_published_at,omitempty"`
	PublishedAt      *time.Time  `gorm:"column:published_at" json:"published_at,omitempty"`
	ArchivedAt       *time.Time  `gorm:"column:archived_at" json:"archived_at,omitempty"`
	ScheduledAction  *string     `gorm:"column:scheduled_action;type:json" json:"-"`
	CreatedBy        uint64      `gorm:"column:created_by" json:"created_by"`
	UpdatedBy        uint64      `gorm:"column:updated_by" json:"updated_by"`
	CreatedAt        time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Entry) TableName() string { return "entries" }

// WasPublished reports whether the entry has ever been published
func (e *Entry) WasPublished() bool {
	return e.FirstPublishedAt != nil
}

// HasPendingChanges reports whether the entry was edited after its last publish
func (e *Entry) HasPendingChanges() bool {
	return e.WasPublished() && e.PublishedVersion != nil && *e.PublishedVersion < e.Version
}

// PendingAction parses the embedded scheduled action, nil if none is set
func (e *Entry) PendingAction() (*ScheduledActionInfo, error) {
	if e.ScheduledAction == nil || *e.ScheduledAction == "" {
		return nil, nil
	}
	var info ScheduledActionInfo
	if err := json.Unmarshal([]byte(*e.ScheduledAction), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SetPendingAction replaces the embedded scheduled action
func (e *Entry) SetPendingAction(info *ScheduledActionInfo) error {
	if info == nil {
		e.ScheduledAction = nil
		return nil
	}
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	s := string(data)
	e.ScheduledAction = &s
	return nil
}

// ClearPendingAction removes the embedded scheduled action
func (e *Entry) ClearPendingAction() {
	e.ScheduledAction = nil
}

// EntryResponse is the API representation of an entry
type EntryResponse struct {
	ID               uint64               `json:"id"`
	SpaceID          string               `json:"space_id"`
	EnvironmentID    uint64               `json:"environment_id"`
	ContentType      string               `json:"content_type"`
	Fields           FieldMap             `json:"fields"`
	Status           EntryStatus          `json:"status"`
	Version          uint                 `json:"version"`
	PublishedVersion *uint                `json:"published_version,omitempty"`
	FirstPublishedAt *time.Time           `json:"first_published_at,omitempty"`
	PublishedAt      *time.Time           `json:"published_at,omitempty"`
	ArchivedAt       *time.Time           `json:"archived_at,omitempty"`
	ScheduledAction  *ScheduledActionInfo `json:"scheduled_action,omitempty"`
	CreatedBy        uint64               `json:"created_by"`
	UpdatedBy        uint64               `json:"updated_by"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// ToResponse converts an entry to its API representation
func (e *Entry) ToResponse() *EntryResponse {
	resp := &EntryResponse{
		ID:               e.ID,
		SpaceID:          e.SpaceID,
		EnvironmentID:    e.EnvironmentID,
		ContentType:      e.ContentType,
		Fields:           e.Fields,
		Status:           e.Status,
		Version:          e.Version,
		PublishedVersion: e.PublishedVersion,
		FirstPublishedAt: e.FirstPublishedAt,
		PublishedAt:      e.PublishedAt,
		ArchivedAt:       e.ArchivedAt,
		CreatedBy:        e.CreatedBy,
		UpdatedBy:        e.UpdatedBy,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	// A malformed embedded action is not worth failing a read for
	if info, err := e.PendingAction(); err == nil {
		resp.ScheduledAction = info
	}
	return resp
}

// CreateEntryRequest is the payload for entry creation
type CreateEntryRequest struct {
	ContentType string   `json:"content_type" binding:"required"`
	Fields      FieldMap `json:"fields" binding:"required"`
	Publish     bool     `json:"publish,omitempty"`
}

// UpdateEntryRequest is the payload for entry field updates
type UpdateEntryRequest struct {
	Fields FieldMap `json:"fields" binding:"required"`
}
