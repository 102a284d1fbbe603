package entities

import (
	"time"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
)

type GenerationResult struct {
	requestID GenerationRequestID
	image     *valueobjects.ImageData
	text      string
	createdAt time.Time
}

// NewGenerationResult accepts a nil image; callers check HasImage.
func NewGenerationResult(requestID GenerationRequestID, image *valueobjects.ImageData, text string) *GenerationResult {
	return &GenerationResult{
		requestID: requestID,
		image:     image,
		text:      text,
		createdAt: time.Now(),
	}
}

func (r *GenerationResult) RequestID() GenerationRequestID {
	return r.requestID
}

func (r *GenerationResult) Image() *valueobjects.ImageData {
	return r.image
}

// Text is whatever text parts the model returned alongside the image.
func (r *GenerationResult) Text() string {
	return r.text
}

func (r *GenerationResult) CreatedAt() time.Time {
	return r.createdAt
}

func (r *GenerationResult) HasImage() bool {
	return r.image != nil
}
