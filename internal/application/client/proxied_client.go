package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
)

// GenerationError is a non-2xx answer from the proxy server.
type GenerationError struct {
	StatusCode int
	Message    string
	Details    any
}

func (e *GenerationError) Error() string {
	return e.Message
}

// GenerateImageRequest is the body of POST /api/generate-image.
type GenerateImageRequest struct {
	OutfitBase64   string `json:"outfitBase64"`
	OutfitMimeType string `json:"outfitMimeType"`
	PersonBase64   string `json:"personBase64"`
	PersonMimeType string `json:"personMimeType"`
}

type GenerateImageResponse struct {
	ImageData string `json:"imageData,omitempty"`
	Error     string `json:"error,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// ProxiedClient sends both images to the proxy server, which holds the
// cloud credentials.
type ProxiedClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewProxiedClient(endpoint string, httpClient *http.Client) *ProxiedClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 300 * time.Second}
	}
	return &ProxiedClient{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

func (c *ProxiedClient) Generate(ctx context.Context, outfit, person *valueobjects.UploadedImage) (string, error) {
	outfitPayload, err := valueobjects.EncodeUploadedImage(outfit)
	if err != nil {
		return "", fmt.Errorf("outfit image: %w", err)
	}
	personPayload, err := valueobjects.EncodeUploadedImage(person)
	if err != nil {
		return "", fmt.Errorf("person image: %w", err)
	}

	reqBody, err := json.Marshal(GenerateImageRequest{
		OutfitBase64:   outfitPayload.Base64,
		OutfitMimeType: outfitPayload.MimeType,
		PersonBase64:   personPayload.Base64,
		PersonMimeType: personPayload.MimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.InfoContext(ctx, "Sending generation request",
		"endpoint", c.endpoint,
		"outfitKB", len(outfitPayload.Base64)/1024,
		"personKB", len(personPayload.Base64)/1024)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var body GenerateImageResponse
	decodeErr := json.Unmarshal(respBody, &body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		genErr := &GenerationError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("request failed with status %d", resp.StatusCode),
		}
		if decodeErr == nil && body.Error != "" {
			genErr.Message = body.Error
			genErr.Details = body.Details
		}
		return "", genErr
	}

	if decodeErr != nil {
		return "", fmt.Errorf("failed to parse response: %w", decodeErr)
	}
	if body.ImageData == "" {
		return "", errors.New("response did not contain image data")
	}

	return body.ImageData, nil
}
