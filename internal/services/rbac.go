// rbac.go
//
// Freedom wall note-board service, a Go replacement for the original
// Express/Sequelize backend.

package services

import (
	"errors"
	"fmt"

	"github.com/freewall/freewall/internal/models"
	"gorm.io/gorm"
)

// GetRoles returns all roles ordered by id.
func GetRoles(db *gorm.DB) ([]models.Role, error) {
	var roles []models.Role
	if err := db.Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// GetPermissions returns all permissions ordered by title.
func GetPermissions(db *gorm.DB) ([]models.Permission, error) {
	var permissions []models.Permission
	if err := db.Order("permission_title ASC").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// GetRolePermissions returns the permissions currently granted to a role.
// Returns ErrNotFound when the role does not exist.
func GetRolePermissions(db *gorm.DB, roleID uint64) ([]models.Permission, error) {
	var role models.Role
	err := db.Preload("Permissions").First(&role, roleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if role.Permissions == nil {
		return []models.Permission{}, nil
	}
	return role.Permissions, nil
}

// EffectivePermissions returns the set of permission titles a role currently
// grants. The junction's composite key keeps the set duplicate-free.
// Returns ErrNotFound when the role does not exist.
func EffectivePermissions(db *gorm.DB, roleID uint64) ([]string, error) {
	permissions, err := GetRolePermissions(db, roleID)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(permissions))
	for _, p := range permissions {
		titles = append(titles, p.PermissionTitle)
	}
	return titles, nil
}

// ReplaceRolePermissions atomically replaces a role's permission set with the
// supplied permission ids. Duplicate ids collapse to one grant. All supplied
// ids must resolve to existing permissions or the whole operation aborts with
// a ValidationError listing the invalid ids. The delete-then-insert runs in a
// single transaction; on any failure the role's prior permission set is left
// untouched. On success the role is returned with its permission set re-read
// after commit.
func ReplaceRolePermissions(db *gorm.DB, roleID uint64, permissionIDs []uint64) (*models.Role, []models.Permission, error) {
	if permissionIDs == nil {
		return nil, nil, NewValidationError("Invalid permissions format")
	}

	var role models.Role
	if err := db.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	// Collapse duplicates, preserving first occurrence order.
	seen := make(map[uint64]struct{}, len(permissionIDs))
	unique := make([]uint64, 0, len(permissionIDs))
	for _, id := range permissionIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	// Resolve every supplied id before mutating anything.
	if len(unique) > 0 {
		var existing []models.Permission
		if err := db.Where("id IN ?", unique).Find(&existing).Error; err != nil {
			return nil, nil, err
		}
		if len(existing) != len(unique) {
			found := make(map[uint64]struct{}, len(existing))
			for _, p := range existing {
				found[p.ID] = struct{}{}
			}
			var invalid []uint64
			for _, id := range unique {
				if _, ok := found[id]; !ok {
					invalid = append(invalid, id)
				}
			}
			return nil, nil, &ValidationError{
				Messages:   []string{"Some permission IDs are invalid"},
				InvalidIDs: invalid,
			}
		}
	}

	// Delete-then-insert as one unit of work. Either both steps commit or the
	// transaction rolls back and the prior permission set survives.
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}

		if len(unique) == 0 {
			return nil
		}

		rows := make([]models.RolePermission, 0, len(unique))
		for _, permissionID := range unique {
			rows = append(rows, models.RolePermission{
				RoleID:       roleID,
				PermissionID: permissionID,
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, nil, fmt.Errorf("permission replacement failed for role %d: %w", roleID, err)
	}

	// Re-read after commit rather than echoing the input, to surface any
	// discrepancy between intent and stored state.
	permissions, err := GetRolePermissions(db, roleID)
	if err != nil {
		return nil, nil, err
	}

	return &role, permissions, nil
}
