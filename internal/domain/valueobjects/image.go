package valueobjects

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/webp"
)

type ImageFormat string

const (
	JPEG ImageFormat = "jpeg"
	PNG  ImageFormat = "png"
	GIF  ImageFormat = "gif"
	WEBP ImageFormat = "webp"
)

// ImageData is an image payload as it travels between the browser, the proxy
// and the model. The bytes are passed through untouched, so they do not have
// to decode as an image.
type ImageData struct {
	data     []byte
	mimeType string
}

func NewImageData(data []byte, mimeType string) (*ImageData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}

	return &ImageData{
		data:     data,
		mimeType: strings.TrimSpace(mimeType),
	}, nil
}

// NewImageDataFromBase64 decodes a base64 payload without data-URL prefix.
func NewImageDataFromBase64(encoded string, mimeType string) (*ImageData, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	return NewImageData(data, mimeType)
}

func (i *ImageData) Data() []byte {
	return i.data
}

func (i *ImageData) MimeType() string {
	return i.mimeType
}

func (i *ImageData) Size() int {
	return len(i.data)
}

// Format sniffs the container format. It returns "" for bytes that are not a
// supported image.
func (i *ImageData) Format() ImageFormat {
	format, err := detectFormat(i.data)
	if err != nil {
		return ""
	}
	return format
}

func (i *ImageData) ToBase64() string {
	return base64.StdEncoding.EncodeToString(i.data)
}

func detectFormat(data []byte) (ImageFormat, error) {
	reader := bytes.NewReader(data)
	_, format, err := image.DecodeConfig(reader)
	if err != nil {
		return "", err
	}

	switch format {
	case "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	case "webp":
		return WEBP, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
