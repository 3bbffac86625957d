// notes.go
//
// Freedom wall note-board service, a Go replacement for the original
// Express/Sequelize backend.

package handlers

import (
	"github.com/freewall/freewall/internal/services"
	"github.com/freewall/freewall/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NotesHandler handles note routes
type NotesHandler struct {
	DB *gorm.DB
}

// NoteInput is the request body for creating and updating notes.
type NoteInput struct {
	NickName  string `json:"nickName"`
	Note      string `json:"note"`
	NoteColor string `json:"noteColor"`
}

// ListNotes handles GET /api/notes
// @Summary List notes
// @Description Get all non-deleted notes with their owner's nickname, newest first
// @Tags Notes
// @Produce json
// @Success 200 {array} services.NoteView
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /notes [get]
func (h *NotesHandler) ListNotes(c *fiber.Ctx) error {
	notes, err := services.ListNotes(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listNotes")
	}
	return utils.SuccessResponse(c, notes, fiber.StatusOK)
}

// CreateNote handles POST /api/notes
// @Summary Create note
// @Description Create a note owned by the user resolved from the nickname
// @Tags Notes
// @Accept json
// @Produce json
// @Param body body NoteInput true "Note to create"
// @Success 201 {object} services.NoteView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /notes [post]
func (h *NotesHandler) CreateNote(c *fiber.Ctx) error {
	var body NoteInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "notes.validation.input")
	}

	note, err := services.CreateNote(h.DB, body.NickName, body.Note, body.NoteColor)
	if err != nil {
		return respondServiceError(c, err, "Note not found", "createNote")
	}

	return utils.SuccessResponse(c, note, fiber.StatusCreated)
}

// UpdateNote handles PUT /api/notes/:id
// @Summary Update note
// @Description Overwrite a note's content, color and owner
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param body body NoteInput true "New note content"
// @Success 200 {object} services.NoteView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /notes/{id} [put]
func (h *NotesHandler) UpdateNote(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.NotFoundResponse(c, "Note not found")
	}

	var body NoteInput
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "notes.validation.input")
	}

	note, err := services.UpdateNote(h.DB, id, body.NickName, body.Note, body.NoteColor)
	if err != nil {
		return respondServiceError(c, err, "Note not found", "updateNote")
	}

	return utils.SuccessResponse(c, note, fiber.StatusOK)
}

// DeleteNote handles DELETE /api/notes/:id
// @Summary Soft-delete note
// @Description Flag a note deleted; the row is kept
// @Tags Notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} utils.AckResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /notes/{id} [delete]
func (h *NotesHandler) DeleteNote(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.NotFoundResponse(c, "Note not found")
	}

	if err := services.SoftDeleteNote(h.DB, id); err != nil {
		return respondServiceError(c, err, "Note not found", "deleteNote")
	}

	return utils.AckResponse(c, "Note soft deleted")
}
