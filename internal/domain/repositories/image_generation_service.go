package repositories

import (
	"context"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/entities"
)

// 画像生成サービス (Vertex AI / Gemini)
type ImageGenerationService interface {
	// GenerateFashionImage returns a result without an image when the model
	// answered with text only.
	GenerateFashionImage(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error)

	Close() error
}
