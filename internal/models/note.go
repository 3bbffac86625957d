package models

import "time"

// Note represents a single colored note on the wall. Notes are soft deleted
// only; soft-deleting the owning user does not touch their notes.
type Note struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint64    `gorm:"column:user_id;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"-"`
	Note      string     `gorm:"type:text;not null" json:"note"`
	NoteColor string     `gorm:"column:note_color;size:32" json:"note_color"`
	IsDeleted bool       `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

// TableName overrides the table name for Note
func (Note) TableName() string {
	return "notes"
}

// Deleted reports whether the note has left the Active state.
func (n *Note) Deleted() bool {
	return n.IsDeleted
}

// MarkDeleted performs the one-way Active -> Deleted transition.
func (n *Note) MarkDeleted(now time.Time) {
	n.IsDeleted = true
	n.DeletedAt = &now
	n.UpdatedAt = now
}
