package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is an uploaded merchant document (menus, invoices, supplier lists)
// with its object-storage location. The file itself lives in the
// configured storage bucket; only metadata is kept here.
type Note struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	MerchantID string             `json:"merchantId" bson:"merchant_id"`

	Title       string   `json:"title" bson:"title"`
	Summary     string   `json:"summary" bson:"summary"`
	Tags        []string `json:"tags" bson:"tags"`
	Category    string   `json:"category" bson:"category"`

	FileName     string `json:"fileName" bson:"file_name"`
	FileURL      string `json:"fileUrl" bson:"file_url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty" bson:"thumbnail_url,omitempty"`
	ContentType  string `json:"contentType" bson:"content_type"`
	FileSize     int64  `json:"fileSize" bson:"file_size"`

	// Storage keys locate the stored objects so deleting the note can
	// also delete its files. Internal, never exposed in responses.
	StorageKey   string `json:"-" bson:"storage_key"`
	ThumbnailKey string `json:"-" bson:"thumbnail_key,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// CreateNoteRequest is the metadata half of a note upload; the file itself
// arrives as multipart form data.
type CreateNoteRequest struct {
	Title    string   `json:"title" form:"title" validate:"required"`
	Summary  string   `json:"summary" form:"summary"`
	Tags     []string `json:"tags" form:"tags"`
	Category string   `json:"category" form:"category"`
}
