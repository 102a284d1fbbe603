package valueobjects

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// EncodedPayload is a file as it is sent over JSON: plain base64 (no data-URL
// prefix) and the declared MIME type.
type EncodedPayload struct {
	Base64   string
	MimeType string
}

// EncodePayload streams r through a base64 encoder. Size and type are not
// checked here.
func EncodePayload(r io.Reader, mimeType string) (*EncodedPayload, error) {
	var sb strings.Builder
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	if _, err := io.Copy(enc, r); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode file: %w", err)
	}

	return &EncodedPayload{
		Base64:   sb.String(),
		MimeType: mimeType,
	}, nil
}

func EncodeUploadedImage(u *UploadedImage) (*EncodedPayload, error) {
	if u == nil {
		return nil, fmt.Errorf("no file selected")
	}
	return EncodePayload(bytes.NewReader(u.Data()), u.MimeType())
}
