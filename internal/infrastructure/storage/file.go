package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrEmptyFile       = errors.New("empty file")
	ErrUnsupportedFile = errors.New("unsupported file type")
)

var documentMIMEs = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// File is an upload held in memory. MIME is detected from the bytes, the
// client supplied content type is ignored.
type File struct {
	Name string
	Data []byte
	MIME string
}

func NewFile(name string, data []byte) File {
	return File{Name: filepath.Base(name), Data: data, MIME: mimetype.Detect(data).String()}
}

// ReadMultipart reads fh fully into memory, rejecting files above maxBytes.
func ReadMultipart(fh *multipart.FileHeader, maxBytes int64) (File, error) {
	if fh == nil {
		return File{}, ErrEmptyFile
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return File{}, ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return File{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return File{}, fmt.Errorf("read upload: %w", err)
	}
	if maxBytes > 0 && int64(len(b)) > maxBytes {
		return File{}, ErrFileTooLarge
	}
	if len(b) == 0 {
		return File{}, ErrEmptyFile
	}

	return NewFile(fh.Filename, b), nil
}

func (f File) IsImage() bool {
	return strings.HasPrefix(f.MIME, "image/")
}

func (f File) IsDocument() bool {
	m := mimetype.Lookup(f.MIME)
	if m == nil {
		return false
	}
	for _, want := range documentMIMEs {
		if m.Is(want) {
			return true
		}
	}
	return false
}

// RequireImage and RequireResume return ErrUnsupportedFile for the wrong kind.
func (f File) RequireImage() error {
	if !f.IsImage() {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, f.MIME)
	}
	return nil
}

func (f File) RequireResume() error {
	if !f.IsImage() && !f.IsDocument() {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, f.MIME)
	}
	return nil
}
