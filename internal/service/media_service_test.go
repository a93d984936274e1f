package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeFile struct {
	*bytes.Reader
}

func (fakeFile) Close() error { return nil }

func newFakeUpload(contentType string, size int) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: "upload.bin",
		Size:     int64(size),
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
	return fakeFile{bytes.NewReader(bytes.Repeat([]byte("x"), size))}, header
}

func TestSaveUploadAvatar(t *testing.T) {
	svc := NewMediaService(t.TempDir(), 1024)

	file, header := newFakeUpload("image/png", 100)
	url, err := svc.SaveUpload(MediaKindAvatar, file, header)
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/avatars/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected URL path: %s", url)
	}
}

func TestSaveUploadWritesFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewMediaService(dir, 1024)

	file, header := newFakeUpload("video/mp4", 200)
	url, err := svc.SaveUpload(MediaKindVideo, file, header)
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}

	onDisk := filepath.Join(dir, "videos", filepath.Base(url))
	info, err := os.Stat(onDisk)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if info.Size() != 200 {
		t.Fatalf("expected 200 bytes on disk, got %d", info.Size())
	}
}

func TestSaveUploadRejectsWrongType(t *testing.T) {
	svc := NewMediaService(t.TempDir(), 1024)

	// A video MIME type is not acceptable for an avatar and vice versa.
	file, header := newFakeUpload("video/mp4", 100)
	if _, err := svc.SaveUpload(MediaKindAvatar, file, header); !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}

	file, header = newFakeUpload("image/png", 100)
	if _, err := svc.SaveUpload(MediaKindVideo, file, header); !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestSaveUploadRejectsOversizedFile(t *testing.T) {
	svc := NewMediaService(t.TempDir(), 50)

	file, header := newFakeUpload("image/png", 100)
	if _, err := svc.SaveUpload(MediaKindAvatar, file, header); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}
