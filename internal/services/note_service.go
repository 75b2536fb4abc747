package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"taployalty/internal/models"
	"taployalty/internal/repositories/interfaces"
	"taployalty/internal/utils"
	"taployalty/pkg/logger"
	"taployalty/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NoteService interface {
	CreateNote(ctx context.Context, merchantID string, req *models.CreateNoteRequest, file *multipart.FileHeader) (*models.Note, error)
	ListNotes(ctx context.Context, merchantID string, params *utils.PaginationParams) ([]*models.Note, int64, error)
	DeleteNote(ctx context.Context, merchantID string, id string) error
}

type noteService struct {
	noteRepo interfaces.NoteRepository
	storage  storage.StorageProvider
	logger   *logger.Logger
}

func NewNoteService(noteRepo interfaces.NoteRepository, provider storage.StorageProvider, log *logger.Logger) NoteService {
	return &noteService{
		noteRepo: noteRepo,
		storage:  provider,
		logger:   log,
	}
}

// CreateNote uploads the document to object storage and persists the note
// metadata. Image uploads also get a thumbnail stored alongside the
// original; thumbnail failures are logged and skipped, not fatal.
func (s *noteService) CreateNote(ctx context.Context, merchantID string, req *models.CreateNoteRequest, fileHeader *multipart.FileHeader) (*models.Note, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("a file is required")
	}
	if fileHeader.Size > utils.MaxDocumentSize {
		return nil, fmt.Errorf("file exceeds the %dMB limit", utils.MaxDocumentSize/(1024*1024))
	}
	if !utils.IsImageFile(fileHeader.Filename) && !utils.IsDocumentFile(fileHeader.Filename) {
		return nil, fmt.Errorf("unsupported file type %s", utils.GetFileExtension(fileHeader.Filename))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	key := noteStorageKey(merchantID, fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = utils.GetContentType(fileHeader.Filename)
	}

	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      file,
		ContentType: contentType,
		Size:        fileHeader.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	note := &models.Note{
		MerchantID:  merchantID,
		Title:       req.Title,
		Summary:     req.Summary,
		Tags:        req.Tags,
		Category:    req.Category,
		FileName:    fileHeader.Filename,
		FileURL:     uploaded.URL,
		ContentType: contentType,
		FileSize:    fileHeader.Size,
		StorageKey:  key,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if utils.IsValidImageFormat(fileHeader.Filename) {
		if thumbURL, err := s.uploadThumbnail(ctx, file, key, fileHeader.Filename); err != nil {
			s.logger.WithError(err).WithField("file", fileHeader.Filename).
				Warn("failed to generate note thumbnail")
		} else {
			note.ThumbnailURL = thumbURL
			note.ThumbnailKey = thumbnailKey(key)
		}
	}

	id, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, err
	}
	note.ID = id

	s.logger.WithFields(map[string]interface{}{
		"merchant_id": merchantID,
		"note_id":     id.Hex(),
		"file_size":   fileHeader.Size,
	}).Info("note created")

	return note, nil
}

func (s *noteService) ListNotes(ctx context.Context, merchantID string, params *utils.PaginationParams) ([]*models.Note, int64, error) {
	return s.noteRepo.ListByMerchant(ctx, merchantID, params)
}

// DeleteNote removes the note record and then its stored files. File
// cleanup failures are logged, not returned; the record is already gone
// and a stray object is better than a note the merchant cannot delete.
func (s *noteService) DeleteNote(ctx context.Context, merchantID string, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid note id")
	}

	note, err := s.noteRepo.GetByID(ctx, merchantID, objectID)
	if err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, merchantID, objectID); err != nil {
		return err
	}

	for _, key := range []string{note.StorageKey, note.ThumbnailKey} {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"merchant_id": merchantID,
				"note_id":     id,
				"storage_key": key,
			}).Warn("failed to delete stored note file")
		}
	}

	return nil
}

func (s *noteService) uploadThumbnail(ctx context.Context, file multipart.File, originalKey, filename string) (string, error) {
	img, err := utils.ResizeImage(file, filename, utils.ThumbnailWidth, utils.ThumbnailWidth)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if format == "" || format == "gif" || format == "webp" {
		format = "jpeg"
	}
	if err := utils.EncodeImage(img, format, &buf, 80); err != nil {
		return "", err
	}

	thumbKey := thumbnailKey(originalKey)
	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         thumbKey,
		Reader:      &buf,
		ContentType: "image/" + format,
		Size:        int64(buf.Len()),
	})
	if err != nil {
		return "", err
	}
	return uploaded.URL, nil
}

func noteStorageKey(merchantID, filename string) string {
	return fmt.Sprintf("merchants/%s/notes/%s", merchantID, utils.GenerateUniqueFilename(filepath.Base(filename)))
}

func thumbnailKey(key string) string {
	ext := filepath.Ext(key)
	return strings.TrimSuffix(key, ext) + "_thumb" + ext
}
