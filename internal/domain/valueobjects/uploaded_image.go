package valueobjects

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxUploadSize is the largest file an upload slot accepts (10MB).
const MaxUploadSize = 10 * 1024 * 1024

// UploadedImage is a file picked by the user, held by an upload slot until it
// is cleared or replaced.
type UploadedImage struct {
	name     string
	data     []byte
	mimeType string
}

func NewUploadedImage(name string, data []byte, mimeType string) *UploadedImage {
	return &UploadedImage{
		name:     name,
		data:     data,
		mimeType: mimeType,
	}
}

// LoadUploadedImage reads a file from disk. The MIME type comes from the file
// extension, falling back to content sniffing.
func LoadUploadedImage(path string) (*UploadedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	// mime.TypeByExtension may append parameters such as "; charset=utf-8"
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	return NewUploadedImage(filepath.Base(path), data, mimeType), nil
}

func (u *UploadedImage) Name() string {
	return u.name
}

func (u *UploadedImage) Data() []byte {
	return u.data
}

func (u *UploadedImage) MimeType() string {
	return u.mimeType
}

func (u *UploadedImage) Size() int64 {
	return int64(len(u.data))
}

// UploadValidationError is shown to the user as is.
type UploadValidationError struct {
	Message string
}

func (e *UploadValidationError) Error() string {
	return e.Message
}

// ValidateUpload enforces the client-side rules: an image/* type of at most
// MaxUploadSize bytes.
func ValidateUpload(u *UploadedImage) error {
	if u == nil {
		return &UploadValidationError{Message: "Please upload an image file"}
	}
	if !strings.HasPrefix(u.MimeType(), "image/") {
		return &UploadValidationError{Message: "Please upload an image file"}
	}
	if u.Size() > MaxUploadSize {
		return &UploadValidationError{Message: "File size must be less than 10MB"}
	}
	return nil
}
