package models

// Role represents a named role that grants a set of permissions
type Role struct {
	ID          uint64       `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleTitle   string       `gorm:"column:role_title;size:255;uniqueIndex;not null" json:"role_title"`
	Users       []User       `gorm:"foreignKey:RoleID" json:"-"`
	Permissions []Permission `gorm:"many2many:role_permissions;joinForeignKey:role_id;joinReferences:permission_id" json:"permissions,omitempty"`
}

// Permission represents a single grantable permission title
type Permission struct {
	ID              uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	PermissionTitle string `gorm:"column:permission_title;size:255;uniqueIndex;not null" json:"permission_title"`
}

// RolePermission is the role/permission junction row. Rows are only ever
// created or destroyed in bulk, never updated in place.
type RolePermission struct {
	RoleID       uint64 `gorm:"column:role_id;primaryKey;autoIncrement:false" json:"role_id"`
	PermissionID uint64 `gorm:"column:permission_id;primaryKey;autoIncrement:false" json:"permission_id"`
}

// TableName overrides the table name for Role
func (Role) TableName() string {
	return "roles"
}

// TableName overrides the table name for Permission
func (Permission) TableName() string {
	return "permissions"
}

// TableName overrides the table name for RolePermission
func (RolePermission) TableName() string {
	return "role_permissions"
}
