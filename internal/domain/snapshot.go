package domain

import "time"

// EntrySnapshot is an immutable copy of an entry's fields captured at publish
// time. Snapshots are append-only: they are never updated after creation.
type EntrySnapshot struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EntryID     uint64    `gorm:"column:entry_id;uniqueIndex:idx_snapshots_entry_version" json:"entry_id"`
	Version     uint      `gorm:"column:version;uniqueIndex:idx_snapshots_entry_version" json:"version"`
	ContentType string    `gorm:"column:content_type;type:varchar(64)" json:"content_type"`
	Fields      FieldMap  `gorm:"column:fields;type:json" json:"fields"`
	Status      string    `gorm:"column:status;type:varchar(20)" json:"status"`
	PublishedBy uint64    `gorm:"column:published_by" json:"published_by"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (EntrySnapshot) TableName() string { return "entry_snapshots" }

// SnapshotResponse is the API representation of a snapshot
type SnapshotResponse struct {
	ID          uint64    `json:"id"`
	EntryID     uint64    `json:"entry_id"`
	Version     uint      `json:"version"`
	ContentType string    `json:"content_type"`
	Fields      FieldMap  `json:"fields"`
	PublishedBy uint64    `json:"published_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts a snapshot to its API representation
func (s *EntrySnapshot) ToResponse() *SnapshotResponse {
	return &SnapshotResponse{
		ID:          s.ID,
		EntryID:     s.EntryID,
		Version:     s.Version,
		ContentType: s.ContentType,
		Fields:      s.Fields,
		PublishedBy: s.PublishedBy,
		CreatedAt:   s.CreatedAt,
	}
}
