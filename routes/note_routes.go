package routes

import (
	"taployalty/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupNoteRoutes sets up routes for merchant document notes
func SetupNoteRoutes(r *gin.RouterGroup, noteHandler *handlers.NoteHandler) {
	notes := r.Group("/notes")
	{
		notes.POST("", noteHandler.CreateNote)
		notes.GET("", noteHandler.ListNotes)
		notes.DELETE("/:id", noteHandler.DeleteNote)
	}
}
