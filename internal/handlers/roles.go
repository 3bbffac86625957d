// roles.go
//
// Freedom wall note-board service, a Go replacement for the original
// Express/Sequelize backend.

package handlers

import (
	"github.com/freewall/freewall/internal/services"
	"github.com/freewall/freewall/internal/types"
	"github.com/freewall/freewall/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RolesHandler handles role and permission administration routes
type RolesHandler struct {
	DB *gorm.DB
}

// ReplacePermissionsInput is the request body for replacing a role's
// permission set. The id list is parsed leniently: a single value or an
// array, numbers or numeric strings.
type ReplacePermissionsInput struct {
	Permissions types.FlexList[types.FlexUint64] `json:"permissions"`
}

// ListRoles handles GET /api/roles
// @Summary List roles
// @Description Get all roles ordered by id
// @Tags Roles
// @Produce json
// @Success 200 {array} models.Role
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /roles [get]
func (h *RolesHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := services.GetRoles(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listRoles")
	}
	return utils.SuccessResponse(c, roles, fiber.StatusOK)
}

// ListPermissions handles GET /api/roles/permissions
// @Summary List permissions
// @Description Get all permissions ordered by title
// @Tags Roles
// @Produce json
// @Success 200 {array} models.Permission
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /roles/permissions [get]
func (h *RolesHandler) ListPermissions(c *fiber.Ctx) error {
	permissions, err := services.GetPermissions(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listPermissions")
	}
	return utils.SuccessResponse(c, permissions, fiber.StatusOK)
}

// GetRolePermissions handles GET /api/roles/:id/permissions
// @Summary Get role permissions
// @Description Get the permissions currently granted to a role
// @Tags Roles
// @Produce json
// @Param id path int true "Role ID"
// @Success 200 {array} models.Permission
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /roles/{id}/permissions [get]
func (h *RolesHandler) GetRolePermissions(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.NotFoundResponse(c, "Role not found")
	}

	permissions, err := services.GetRolePermissions(h.DB, id)
	if err != nil {
		return respondServiceError(c, err, "Role not found", "getRolePermissions")
	}

	return utils.SuccessResponse(c, permissions, fiber.StatusOK)
}

// ReplaceRolePermissions handles PUT /api/roles/:id/permissions
// @Summary Replace role permissions
// @Description Atomically replace a role's permission set with the supplied permission ids
// @Tags Roles
// @Accept json
// @Produce json
// @Param id path int true "Role ID"
// @Param body body ReplacePermissionsInput true "Permission ids"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /roles/{id}/permissions [put]
func (h *RolesHandler) ReplaceRolePermissions(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.NotFoundResponse(c, "Role not found")
	}

	var body ReplacePermissionsInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid permissions format", fiber.StatusBadRequest, "roles.validation.input")
	}

	var permissionIDs []uint64
	if body.Permissions != nil {
		flexIDs := body.Permissions.Slice()
		permissionIDs = make([]uint64, 0, len(flexIDs))
		for _, flexID := range flexIDs {
			permissionIDs = append(permissionIDs, flexID.Uint64())
		}
	}

	role, permissions, err := services.ReplaceRolePermissions(h.DB, id, permissionIDs)
	if err != nil {
		return respondServiceError(c, err, "Role not found", "replaceRolePermissions")
	}

	return utils.SuccessResponse(c, fiber.Map{
		"message": "Permissions updated successfully",
		"role": fiber.Map{
			"id":          role.ID,
			"role_title":  role.RoleTitle,
			"permissions": permissions,
		},
	}, fiber.StatusOK)
}
