package storage

import (
	"context"
	"io"
)

// StorageProvider stores merchant note documents and their thumbnails.
// Keys are caller-chosen paths like merchants/<id>/notes/<file>; the
// provider owns only the bytes, metadata lives in the notes collection.
type StorageProvider interface {
	Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error)
	Delete(ctx context.Context, key string) error
}

type UploadRequest struct {
	Key         string
	Reader      io.Reader
	ContentType string
	Size        int64
}

type UploadResponse struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}
