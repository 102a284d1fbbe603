package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/entities"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/repositories"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/infrastructure/external"
)

var ErrNoImageInStream = errors.New("No image data received from API")

// DirectClient calls the Gemini API itself with an API key, without the
// proxy. The key travels with every request, so this variant is only for
// local experiments.
type DirectClient struct {
	pool       repositories.GenAIClientPool
	model      string
	parameters *valueobjects.GenerationParameters
	policy     valueobjects.ImagePickPolicy
}

func NewDirectClient(
	ctx context.Context,
	pool repositories.GenAIClientPool,
	model string,
	parameters *valueobjects.GenerationParameters,
	policy valueobjects.ImagePickPolicy,
) (*DirectClient, error) {
	if parameters == nil {
		parameters = valueobjects.DefaultGenerationParameters()
	}
	if policy == "" {
		policy = valueobjects.PickLastImage
	}

	// キーの設定ミスをここで検出する
	if _, err := pool.GetGenAIClient(ctx); err != nil {
		return nil, err
	}

	return &DirectClient{
		pool:       pool,
		model:      model,
		parameters: parameters,
		policy:     policy,
	}, nil
}

func (c *DirectClient) Generate(ctx context.Context, outfit, person *valueobjects.UploadedImage) (string, error) {
	if outfit == nil || person == nil {
		return "", fmt.Errorf("both images are required")
	}

	outfitImage, err := valueobjects.NewImageData(outfit.Data(), outfit.MimeType())
	if err != nil {
		return "", fmt.Errorf("outfit image: %w", err)
	}
	personImage, err := valueobjects.NewImageData(person.Data(), person.MimeType())
	if err != nil {
		return "", fmt.Errorf("person image: %w", err)
	}

	genAIClient, err := c.pool.GetGenAIClient(ctx)
	if err != nil {
		return "", err
	}

	chat, err := genAIClient.Chats.Create(ctx, c.model, external.NewGenerateContentConfig(c.parameters), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create chat: %w", err)
	}

	slog.InfoContext(ctx, "Streaming generation", "model", c.model, "policy", c.policy)

	var image *genai.Blob
	chunks := 0
	for resp, err := range chat.SendStream(ctx, external.NewFashionParts(entities.FashionPrompt, outfitImage, personImage)...) {
		if err != nil {
			return "", fmt.Errorf("failed to generate content: %w", err)
		}
		chunks++

		blob, _ := external.ExtractImage(resp, c.policy)
		if blob == nil {
			continue
		}
		if image == nil || c.policy == valueobjects.PickLastImage {
			image = blob
		}
	}

	if image == nil {
		slog.WarnContext(ctx, "No image data in stream", "chunks", chunks)
		return "", ErrNoImageInStream
	}

	slog.InfoContext(ctx, "Image received", "chunks", chunks, "sizeKB", len(image.Data)/1024)
	return base64.StdEncoding.EncodeToString(image.Data), nil
}
