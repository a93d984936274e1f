package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors for media uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// MediaKind selects the MIME allow-list for an upload.
type MediaKind string

const (
	MediaKindAvatar MediaKind = "avatar"
	MediaKindVideo  MediaKind = "video"
)

var avatarMIMETypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var videoMIMETypes = map[string]string{
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
}

// MediaService is the blob store: it keeps uploads on local disk under
// per-kind directories with UUID filenames and hands back the public URL
// path the static file route serves.
type MediaService struct {
	uploadDir string
	maxBytes  int64
}

// NewMediaService creates a new MediaService.
func NewMediaService(uploadDir string, maxBytes int64) *MediaService {
	return &MediaService{uploadDir: uploadDir, maxBytes: maxBytes}
}

// SaveUpload validates and stores an uploaded file, returning its URL path.
func (s *MediaService) SaveUpload(kind MediaKind, file multipart.File, header *multipart.FileHeader) (string, error) {
	allowed := avatarMIMETypes
	if kind == MediaKindVideo {
		allowed = videoMIMETypes
	}

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowed[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s (allowed: %s)",
			ErrUnsupportedFileType, contentType, strings.Join(keys(allowed), ", "))
	}

	if header.Size > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.maxBytes)
	}

	dir := filepath.Join(s.uploadDir, string(kind)+"s")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return "/uploads/" + string(kind) + "s/" + filename, nil
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
