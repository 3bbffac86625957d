package models

import "time"

// User represents a wall participant. Users are soft deleted only; a deleted
// user's nickname may be reused by a new account.
type User struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Nickname  string     `gorm:"size:30;not null;index" json:"nickname"`
	RoleID    *uint64    `gorm:"column:role_id" json:"role_id"`
	Role      *Role      `gorm:"foreignKey:RoleID" json:"-"`
	IsDeleted bool       `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// Deleted reports whether the user has left the Active state.
func (u *User) Deleted() bool {
	return u.IsDeleted
}

// MarkDeleted performs the one-way Active -> Deleted transition.
func (u *User) MarkDeleted(now time.Time) {
	u.IsDeleted = true
	u.DeletedAt = &now
	u.UpdatedAt = now
}

// RoleTitle returns the role title for display, defaulting to "User"
// when no role is attached.
func (u *User) RoleTitle() string {
	if u.Role == nil {
		return "User"
	}
	return u.Role.RoleTitle
}
