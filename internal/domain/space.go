package domain

import "time"

// Space plans
const (
	PlanFree       = "free"
	PlanTeam       = "team"
	PlanEnterprise = "enterprise"
)

// Space member roles
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// DefaultEnvironment is created with every space
const DefaultEnvironment = "master"

// Space is a content tenant, addressed by subdomain on the delivery API
type Space struct {
	ID            string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name          string     `gorm:"column:name;type:varchar(100)" json:"name"`
	Subdomain     string     `gorm:"column:subdomain;type:varchar(63);uniqueIndex" json:"subdomain"`
	Plan          string     `gorm:"column:plan;type:varchar(16);default:'free'" json:"plan"`
	Suspended     bool       `gorm:"column:suspended;default:false" json:"suspended"`
	SuspendedAt   *time.Time `gorm:"column:suspended_at" json:"suspended_at,omitempty"`
	DefaultLocale string     `gorm:"column:default_locale;type:varchar(12);default:'en-US'" json:"default_locale"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Space) TableName() string { return "spaces" }

// Environment is an isolated content area within a space
type Environment struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SpaceID   string    `gorm:"column:space_id;type:varchar(36);uniqueIndex:idx_environments_space_name" json:"space_id"`
	Name      string    `gorm:"column:name;type:varchar(64);uniqueIndex:idx_environments_space_name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Environment) TableName() string { return "environments" }

// SpaceMember grants a user a role within a space
type SpaceMember struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SpaceID   string    `gorm:"column:space_id;type:varchar(36);uniqueIndex:idx_space_members_space_user" json:"space_id"`
	UserID    uint64    `gorm:"column:user_id;uniqueIndex:idx_space_members_space_user;index" json:"user_id"`
	Role      string    `gorm:"column:role;type:varchar(16);default:'viewer'" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SpaceMember) TableName() string { return "space_members" }

// CreateSpaceRequest is the payload for space provisioning
type CreateSpaceRequest struct {
	Name          string `json:"name" binding:"required"`
	Subdomain     string `json:"subdomain" binding:"required"`
	Plan          string `json:"plan,omitempty"`
	DefaultLocale string `json:"default_locale,omitempty"`
}

// UpdateSpaceRequest is the payload for space settings changes
type UpdateSpaceRequest struct {
	Name          *string `json:"name,omitempty"`
	Plan          *string `json:"plan,omitempty"`
	DefaultLocale *string `json:"default_locale,omitempty"`
}

// AddMemberRequest grants a role to a user in a space
type AddMemberRequest struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=owner admin editor viewer"`
}
