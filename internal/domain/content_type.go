package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// FieldDefinition describes a single field of a content type. Only the
// Localized flag affects save semantics; the rest is editor metadata.
type FieldDefinition struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Type      string `json:"type,omitempty"`
	Localized bool   `json:"localized"`
	Required  bool   `json:"required,omitempty"`
	Disabled  bool   `json:"disabled,omitempty"`
}

// FieldDefinitions is the JSON column holding a content type's field list
type FieldDefinitions []FieldDefinition

// Scan implements sql.Scanner for JSON columns
func (f *FieldDefinitions) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("failed to scan FieldDefinitions: unsupported source type")
	}
	return json.Unmarshal(data, f)
}

// Value implements driver.Valuer for JSON columns
func (f FieldDefinitions) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

// ByID returns the field definition with the given ID, nil if absent
func (f FieldDefinitions) ByID(id string) *FieldDefinition {
	for i := range f {
		if f[i].ID == id {
			return &f[i]
		}
	}
	return nil
}

// IsLocalized reports whether a field stores per-locale values. Unknown
// fields are treated as localized so their locale keys pass through as-is.
func (f FieldDefinitions) IsLocalized(fieldID string) bool {
	def := f.ByID(fieldID)
	if def == nil {
		return true
	}
	return def.Localized
}

// ContentType describes the schema of entries within an environment
type ContentType struct {
	ID            uint64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SpaceID       string           `gorm:"column:space_id;type:varchar(36);index" json:"space_id"`
	EnvironmentID uint64           `gorm:"column:environment_id;uniqueIndex:idx_content_types_env_type" json:"environment_id"`
	TypeID        string           `gorm:"column:type_id;type:varchar(64);uniqueIndex:idx_content_types_env_type" json:"type_id"`
	Name          string           `gorm:"column:name;type:varchar(100)" json:"name"`
	Description   *string          `gorm:"column:description;type:text" json:"description,omitempty"`
	DisplayField  string           `gorm:"column:display_field;type:varchar(64)" json:"display_field,omitempty"`
	Fields        FieldDefinitions `gorm:"column:fields;type:json" json:"fields"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentType) TableName() string { return "content_types" }

// UpsertContentTypeRequest is the payload for creating or replacing a content type
type UpsertContentTypeRequest struct {
	Name         string           `json:"name" binding:"required"`
	Description  *string          `json:"description,omitempty"`
	DisplayField string           `json:"display_field,omitempty"`
	Fields       FieldDefinitions `json:"fields" binding:"required"`
}
