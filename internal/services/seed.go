// seed.go
//
// Freedom wall note-board service, a Go replacement for the original
// Express/Sequelize backend.

package services

import (
	"errors"
	"log"

	"github.com/freewall/freewall/internal/models"
	"gorm.io/gorm"
)

// Permission titles known to the seed policy and the route guards.
const (
	PermReadNote    = "read_note"
	PermCreateNote  = "create_note"
	PermUpdateNote  = "update_note"
	PermDeleteNote  = "delete_note"
	PermManageUsers = "manage_users"
	PermManageRoles = "manage_roles"
)

// SeedPolicy describes the baseline catalog of roles and permissions and
// which permissions each role starts with.
type SeedPolicy struct {
	Roles       []string
	Permissions []string
	Grants      map[string][]string
}

// DefaultSeedPolicy returns the deployment's baseline RBAC catalog.
func DefaultSeedPolicy() SeedPolicy {
	return SeedPolicy{
		Roles: []string{"Admin", "Moderator", "User"},
		Permissions: []string{
			PermReadNote,
			PermCreateNote,
			PermUpdateNote,
			PermDeleteNote,
			PermManageUsers,
			PermManageRoles,
		},
		Grants: map[string][]string{
			"Admin": {
				PermReadNote,
				PermCreateNote,
				PermUpdateNote,
				PermDeleteNote,
				PermManageUsers,
				PermManageRoles,
			},
			"Moderator": {
				PermReadNote,
				PermCreateNote,
				PermUpdateNote,
				PermDeleteNote,
			},
			"User": {
				PermReadNote,
				PermCreateNote,
				PermUpdateNote,
			},
		},
	}
}

// Seed idempotently ensures the policy's roles, permissions and grants exist.
// It only inserts what is missing: titles not yet present and (role,
// permission) pairs in the set difference between policy and database. It
// never deletes, so assignments an operator has removed stay removed unless
// the pair is reinserted by policy.
func Seed(db *gorm.DB, policy SeedPolicy) error {
	for _, title := range policy.Roles {
		if err := ensureRole(db, title); err != nil {
			return err
		}
	}

	for _, title := range policy.Permissions {
		if err := ensurePermission(db, title); err != nil {
			return err
		}
	}

	roleIDs, err := roleIDsByTitle(db)
	if err != nil {
		return err
	}
	permissionIDs, err := permissionIDsByTitle(db)
	if err != nil {
		return err
	}

	for _, roleTitle := range policy.Roles {
		roleID, ok := roleIDs[roleTitle]
		if !ok {
			continue
		}

		existing, err := existingGrantSet(db, roleID)
		if err != nil {
			return err
		}

		for _, permTitle := range policy.Grants[roleTitle] {
			permissionID, ok := permissionIDs[permTitle]
			if !ok {
				continue
			}
			if _, granted := existing[permissionID]; granted {
				continue
			}

			pair := models.RolePermission{RoleID: roleID, PermissionID: permissionID}
			if err := db.Create(&pair).Error; err != nil {
				return err
			}
			log.Printf("Seeded grant %s -> %s", roleTitle, permTitle)
		}
	}

	return nil
}

func ensureRole(db *gorm.DB, title string) error {
	var role models.Role
	err := db.Where("role_title = ?", title).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Seeding role %s", title)
		return db.Create(&models.Role{RoleTitle: title}).Error
	}
	return err
}

func ensurePermission(db *gorm.DB, title string) error {
	var permission models.Permission
	err := db.Where("permission_title = ?", title).First(&permission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Seeding permission %s", title)
		return db.Create(&models.Permission{PermissionTitle: title}).Error
	}
	return err
}

func roleIDsByTitle(db *gorm.DB) (map[string]uint64, error) {
	var roles []models.Role
	if err := db.Find(&roles).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uint64, len(roles))
	for _, role := range roles {
		ids[role.RoleTitle] = role.ID
	}
	return ids, nil
}

func permissionIDsByTitle(db *gorm.DB) (map[string]uint64, error) {
	var permissions []models.Permission
	if err := db.Find(&permissions).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uint64, len(permissions))
	for _, permission := range permissions {
		ids[permission.PermissionTitle] = permission.ID
	}
	return ids, nil
}

func existingGrantSet(db *gorm.DB, roleID uint64) (map[uint64]struct{}, error) {
	var pairs []models.RolePermission
	if err := db.Where("role_id = ?", roleID).Find(&pairs).Error; err != nil {
		return nil, err
	}
	set := make(map[uint64]struct{}, len(pairs))
	for _, pair := range pairs {
		set[pair.PermissionID] = struct{}{}
	}
	return set, nil
}
