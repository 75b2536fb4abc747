package handlers

import (
	"net/http"
	"strings"

	"taployalty/internal/models"
	"taployalty/internal/services"
	"taployalty/internal/utils"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	noteService services.NoteService
}

func NewNoteHandler(noteService services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// CreateNote takes multipart form data: the document under "file" plus the
// note metadata fields
func (h *NoteHandler) CreateNote(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	var request models.CreateNoteRequest
	if err := c.ShouldBind(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "A file is required")
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), merchantID, &request, fileHeader)
	if err != nil {
		if strings.Contains(err.Error(), "limit") {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "NOTE_CREATE_FAILED", "Failed to create note: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Note created successfully", note)
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	notes, total, err := h.noteService.ListNotes(c.Request.Context(), merchantID, params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "NOTE_LIST_FAILED", "Failed to list notes: "+err.Error())
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	utils.SuccessResponseWithMeta(c, "Notes retrieved successfully", map[string]interface{}{
		"notes": notes,
	}, meta)
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), merchantID, c.Param("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Note")
			return
		}
		if strings.Contains(err.Error(), "invalid") {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "NOTE_DELETE_FAILED", "Failed to delete note: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Note deleted successfully", nil)
}
