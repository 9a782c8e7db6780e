package domain

import "time"

// Platform-level roles. Space-level roles live in SpaceMember.
const (
	PlatformRoleAdmin = "admin"
	PlatformRoleUser  = "user"
)

// User is a platform account. Space-level permissions live in SpaceMember;
// the Role here only distinguishes platform admins from regular users.
type User struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username    string     `gorm:"column:username;type:varchar(50);uniqueIndex" json:"username"`
	Email       string     `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Password    string     `gorm:"column:password;type:varchar(255)" json:"-"`
	Name        string     `gorm:"column:name;type:varchar(100)" json:"name"`
	Role        string     `gorm:"column:role;type:varchar(16);default:'user'" json:"role"`
	Status      string     `gorm:"column:status;type:varchar(16);default:'active'" json:"status"`
	LastLoginAt *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// UserResponse is the API representation of a user
type UserResponse struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts a user to its API representation
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// RegisterRequest is the payload for account creation
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest is the payload for authentication
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
