package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".xls":  {},
	".xlsx": {},
	".txt":  {},
}

// Storage validates and persists ticket attachments on local disk. Stored
// names carry a UUID suffix so uploads never collide.
type Storage struct {
	cfg config.UploadConfig
	now func() time.Time
}

// NewStorage creates the storage and ensures the upload directory exists.
func NewStorage(cfg config.UploadConfig) (*Storage, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{cfg: cfg, now: time.Now}, nil
}

// Dir returns the directory files are stored in.
func (s *Storage) Dir() string {
	return s.cfg.Dir
}

// SaveAll validates and stores a batch of uploaded files, enforcing the
// per-request count limit. Nothing is written unless all files validate.
func (s *Storage) SaveAll(files []*multipart.FileHeader, maxFiles int) ([]domain.Attachment, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if maxFiles > 0 && len(files) > maxFiles {
		return nil, apperrors.NewValidationError(fmt.Sprintf("a maximum of %d files can be uploaded", maxFiles))
	}
	for _, fh := range files {
		if err := s.validate(fh); err != nil {
			return nil, err
		}
	}

	attachments := make([]domain.Attachment, 0, len(files))
	for _, fh := range files {
		attachment, err := s.save(fh)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}
	return attachments, nil
}

func (s *Storage) validate(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return apperrors.NewValidationError(fmt.Sprintf("file type %s is not allowed", ext))
	}
	if s.cfg.MaxFileBytes > 0 && fh.Size > s.cfg.MaxFileBytes {
		return apperrors.NewValidationError(fmt.Sprintf("file %s exceeds the maximum size of %d bytes", fh.Filename, s.cfg.MaxFileBytes))
	}
	return nil
}

func (s *Storage) save(fh *multipart.FileHeader) (domain.Attachment, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	stored := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString(), ext)

	src, err := fh.Open()
	if err != nil {
		return domain.Attachment{}, apperrors.NewInternalError(err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.cfg.Dir, stored))
	if err != nil {
		return domain.Attachment{}, apperrors.NewInternalError(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return domain.Attachment{}, apperrors.NewInternalError(err)
	}

	return domain.Attachment{
		Filename:     stored,
		OriginalName: fh.Filename,
		StoragePath:  "/uploads/" + stored,
		UploadedAt:   s.now(),
	}, nil
}
