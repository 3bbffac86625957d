// users.go
//
// Freedom wall note-board service, a Go replacement for the original
// Express/Sequelize backend.

package services

import (
	"errors"
	"time"

	"github.com/freewall/freewall/internal/models"
	"gorm.io/gorm"
)

// UserView is the API shape of a user joined with its role title.
type UserView struct {
	ID       uint64 `json:"id"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

func userView(user *models.User) UserView {
	return UserView{
		ID:       user.ID,
		Nickname: user.Nickname,
		Role:     user.RoleTitle(),
	}
}

// ListUsers returns all non-deleted users with their role title.
func ListUsers(db *gorm.DB) ([]UserView, error) {
	var users []models.User
	err := db.Preload("Role").
		Where("is_deleted = ?", false).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	return views, nil
}

// CreateUser inserts a user with the given nickname and role. The role must
// exist and the nickname must be unique among non-deleted users; a nickname
// freed by a soft-deleted user may be reused.
func CreateUser(db *gorm.DB, nickname string, roleID uint64) (*UserView, error) {
	if nickname == "" || roleID == 0 {
		return nil, NewValidationError("Nickname and role_id are required")
	}

	if err := requireRole(db, roleID); err != nil {
		return nil, err
	}

	var existing models.User
	err := db.Where("nickname = ? AND is_deleted = ?", nickname, false).First(&existing).Error
	if err == nil {
		return nil, NewValidationError("User with this nickname already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		Nickname: nickname,
		RoleID:   &roleID,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	return reloadUserView(db, user.ID)
}

// UpdateUser changes a non-deleted user's nickname and role. Returns
// ErrNotFound when the target user is absent or already deleted, and a
// ValidationError when the new nickname collides with a different non-deleted
// user.
func UpdateUser(db *gorm.DB, id uint64, nickname string, roleID uint64) (*UserView, error) {
	if nickname == "" || roleID == 0 {
		return nil, NewValidationError("Nickname and role_id are required")
	}

	if err := requireRole(db, roleID); err != nil {
		return nil, err
	}

	var user models.User
	err := db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var collision models.User
	err = db.Where("nickname = ? AND is_deleted = ? AND id <> ?", nickname, false, id).
		First(&collision).Error
	if err == nil {
		return nil, NewValidationError("This nickname is already taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = db.Model(&user).Updates(map[string]interface{}{
		"nickname":   nickname,
		"role_id":    roleID,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}

	return reloadUserView(db, id)
}

// SoftDeleteUser flags a non-deleted user deleted with a timestamp. The
// user's notes are left untouched. Returns ErrNotFound when the target user
// is absent or already deleted.
func SoftDeleteUser(db *gorm.DB, id uint64) error {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if user.Deleted() {
		return ErrNotFound
	}

	user.MarkDeleted(time.Now())
	return db.Model(&user).Updates(map[string]interface{}{
		"is_deleted": user.IsDeleted,
		"deleted_at": user.DeletedAt,
		"updated_at": user.UpdatedAt,
	}).Error
}

// requireRole fails with a ValidationError when the role id does not resolve.
func requireRole(db *gorm.DB, roleID uint64) error {
	var role models.Role
	if err := db.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewValidationError("Invalid role_id")
		}
		return err
	}
	return nil
}

func reloadUserView(db *gorm.DB, id uint64) (*UserView, error) {
	var user models.User
	if err := db.Preload("Role").First(&user, id).Error; err != nil {
		return nil, err
	}
	view := userView(&user)
	return &view, nil
}
