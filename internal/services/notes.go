// notes.go
//
// Freedom wall note-board service, a Go replacement for the original
// Express/Sequelize backend.

package services

import (
	"errors"
	"strings"
	"time"

	"github.com/freewall/freewall/internal/models"
	"gorm.io/gorm"
)

// NoteView is the API shape of a note joined with its owner's nickname.
type NoteView struct {
	ID        uint64    `json:"id"`
	NickName  string    `json:"nickName"`
	Note      string    `json:"note"`
	NoteColor string    `json:"noteColor"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func noteView(note *models.Note) NoteView {
	view := NoteView{
		ID:        note.ID,
		Note:      note.Note,
		NoteColor: note.NoteColor,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
	// The owner join ignores the user's deleted state: soft-deleting a user
	// keeps their notes on the wall under their nickname.
	if note.User != nil {
		view.NickName = note.User.Nickname
	}
	return view
}

// ListNotes returns all non-deleted notes joined with their owner's nickname,
// newest first.
func ListNotes(db *gorm.DB) ([]NoteView, error) {
	var notes []models.Note
	err := db.Preload("User").
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}

	views := make([]NoteView, 0, len(notes))
	for i := range notes {
		views = append(views, noteView(&notes[i]))
	}
	return views, nil
}

// CreateNote validates the input, resolves the nickname among non-deleted
// users and inserts a note owned by that user.
func CreateNote(db *gorm.DB, nickName, text, color string) (*NoteView, error) {
	if messages := ValidateNoteInput(nickName, text, color); messages != nil {
		return nil, &ValidationError{Messages: messages}
	}

	user, err := findActiveUserByNickname(db, strings.TrimSpace(nickName))
	if err != nil {
		return nil, err
	}

	note := models.Note{
		UserID:    &user.ID,
		Note:      strings.TrimSpace(text),
		NoteColor: color,
	}
	if err := db.Create(&note).Error; err != nil {
		return nil, err
	}

	return reloadNoteView(db, note.ID)
}

// UpdateNote re-resolves the nickname (ownership may change) and overwrites
// the note's content, color and owner. Returns ErrNotFound when the note is
// absent or already deleted.
func UpdateNote(db *gorm.DB, id uint64, nickName, text, color string) (*NoteView, error) {
	if messages := ValidateNoteInput(nickName, text, color); messages != nil {
		return nil, &ValidationError{Messages: messages}
	}

	user, err := findActiveUserByNickname(db, strings.TrimSpace(nickName))
	if err != nil {
		return nil, err
	}

	var note models.Note
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err = db.Model(&note).Updates(map[string]interface{}{
		"user_id":    user.ID,
		"note":       strings.TrimSpace(text),
		"note_color": color,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}

	return reloadNoteView(db, id)
}

// SoftDeleteNote flags a non-deleted note deleted with a timestamp. Returns
// ErrNotFound when the note is absent or already deleted.
func SoftDeleteNote(db *gorm.DB, id uint64) error {
	var note models.Note
	if err := db.First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if note.Deleted() {
		return ErrNotFound
	}

	note.MarkDeleted(time.Now())
	return db.Model(&note).Updates(map[string]interface{}{
		"is_deleted": note.IsDeleted,
		"deleted_at": note.DeletedAt,
		"updated_at": note.UpdatedAt,
	}).Error
}

// findActiveUserByNickname resolves a nickname among non-deleted users.
// An unresolved nickname is a validation failure, not a 404: the note
// endpoints reject the write as bad input.
func findActiveUserByNickname(db *gorm.DB, nickname string) (*models.User, error) {
	var user models.User
	err := db.Where("nickname = ? AND is_deleted = ?", nickname, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("User not found")
		}
		return nil, err
	}
	return &user, nil
}

func reloadNoteView(db *gorm.DB, id uint64) (*NoteView, error) {
	var note models.Note
	if err := db.Preload("User").First(&note, id).Error; err != nil {
		return nil, err
	}
	view := noteView(&note)
	return &view, nil
}
