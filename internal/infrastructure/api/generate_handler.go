package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/application/usecases"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain"
)

const defaultMaxBodyBytes = 10 * 1024 * 1024 // 10MB

type generateImageRequest struct {
	OutfitBase64   string `json:"outfitBase64"`
	OutfitMimeType string `json:"outfitMimeType"`
	PersonBase64   string `json:"personBase64"`
	PersonMimeType string `json:"personMimeType"`
}

type generateImageResponse struct {
	ImageData string `json:"imageData"`
}

type GenerateHandler struct {
	generateUseCase *usecases.GenerateImageUseCase
	maxBodyBytes    int64
}

func NewGenerateHandler(generateUseCase *usecases.GenerateImageUseCase, maxBodyBytes int64) *GenerateHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &GenerateHandler{
		generateUseCase: generateUseCase,
		maxBodyBytes:    maxBodyBytes,
	}
}

// HandleGenerateImage POST /api/generate-image
func (h *GenerateHandler) HandleGenerateImage(w http.ResponseWriter, r *http.Request) {
	logger := loggerFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req generateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.Warn("Request body too large", "limit", maxErr.Limit)
			sendError(w, fmt.Sprintf("Request body too large (max %dMB)", h.maxBodyBytes/(1024*1024)), http.StatusRequestEntityTooLarge)
			return
		}
		logger.Warn("Invalid request body", "error", err)
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	logger.Info("Generate image request",
		"outfitKB", len(req.OutfitBase64)/1024,
		"outfitMimeType", req.OutfitMimeType,
		"personKB", len(req.PersonBase64)/1024,
		"personMimeType", req.PersonMimeType)

	output, err := h.generateUseCase.Execute(r.Context(), usecases.GenerateImageInput{
		OutfitBase64:   req.OutfitBase64,
		OutfitMimeType: req.OutfitMimeType,
		PersonBase64:   req.PersonBase64,
		PersonMimeType: req.PersonMimeType,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	logger.Info("Image generated", "generationID", output.RequestID, "sizeKB", len(output.ImageBase64)/1024)
	sendJSON(w, http.StatusOK, generateImageResponse{ImageData: output.ImageBase64})
}

func (h *GenerateHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := loggerFrom(r.Context())

	var upstreamErr *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrMissingInput):
		logger.Warn("Missing input")
		sendError(w, domain.ErrMissingInput.Error(), http.StatusBadRequest)

	case errors.Is(err, usecases.ErrInvalidInput):
		logger.Warn("Invalid input", "error", err)
		sendError(w, "Invalid base64 image data", http.StatusBadRequest)

	case errors.Is(err, domain.ErrNoImageData):
		logger.Error("No image data in response")
		sendError(w, domain.ErrNoImageData.Error(), http.StatusInternalServerError)

	case errors.As(err, &upstreamErr):
		logger.Error("Generation error", "error", upstreamErr.Message, "cause", upstreamErr.Err)
		sendErrorWithDetails(w, upstreamErr.Message, upstreamErr.Details, http.StatusInternalServerError)

	default:
		logger.Error("Generation error", "error", err)
		sendError(w, "Failed to generate image", http.StatusInternalServerError)
	}
}
