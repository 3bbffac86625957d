// users.go
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

// UsersHandler handles user administration routes
type UsersHandler struct {
	DB *gorm.DB
}

// UserInput is the request body for creating and updating users.
type UserInput struct {
	Nickname string           `json:"nickname"`
	RoleID   types.FlexUint64 `json:"role_id"`
}

// ListUsers handles GET /api/users
// @Summary List users
// @Description Get all non-deleted users with their role title
// @Tags Users
// @Produce json
// @Success 200 {array} services.UserView
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := services.ListUsers(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listUsers")
	}
	return utils.SuccessResponse(c, users, fiber.StatusOK)
}

// CreateUser handles POST /api/users
// @Summary Create user
// @Description Create a user with a nickname and a role
// @Tags Users
// @Accept json
// @Produce json
// @Param body body UserInput true "User to create"
// @Success 201 {object} services.UserView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	var body UserInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}

	user, err := services.CreateUser(h.DB, body.Nickname, body.RoleID.Uint64())
	if err != nil {
		return respondServiceError(c, err, "User not found", "createUser")
	}

	return utils.SuccessResponse(c, user, fiber.StatusCreated)
}

// UpdateUser handles PUT /api/users/:id
// @Summary Update user
// @Description Change a user's nickname and role
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body UserInput true "New user fields"
// @Success 200 {object} services.UserView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users/{id} [put]
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.NotFoundResponse(c, "User not found")
	}

	var body UserInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}

	user, err := services.UpdateUser(h.DB, id, body.Nickname, body.RoleID.Uint64())
	if err != nil {
		return respondServiceError(c, err, "User not found", "updateUser")
	}

	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// DeleteUser handles DELETE /api/users/:id
// @Summary Soft-delete user
// @Description Flag a user deleted; their notes stay on the wall
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.AckResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users/{id} [delete]
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.NotFoundResponse(c, "User not found")
	}

	if err := services.SoftDeleteUser(h.DB, id); err != nil {
		return respondServiceError(c, err, "User not found", "deleteUser")
	}

	return utils.AckResponse(c, "User deleted successfully")
}
