package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/config"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/repositories"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/infrastructure/services"
)

// ImageGenerationClient turns an outfit photo and a person photo into one
// generated image, returned as plain base64.
type ImageGenerationClient interface {
	Generate(ctx context.Context, outfit, person *valueobjects.UploadedImage) (string, error)
}

// NewImageGenerationClient builds exactly one variant, chosen by cfg.Mode.
// httpClient may be nil.
func NewImageGenerationClient(ctx context.Context, cfg *config.ClientConfig, httpClient *http.Client) (ImageGenerationClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Mode {
	case config.ClientModeProxy:
		return NewProxiedClient(cfg.APIEndpoint, httpClient), nil

	case config.ClientModeDirect:
		pool := services.NewClientPoolService(&repositories.AIClientConfig{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			HTTPClient: httpClient,
		})
		params := valueobjects.DefaultGenerationParameters()
		if cfg.SafetyThreshold != "" {
			var err error
			if params, err = params.WithSafetyThreshold(cfg.SafetyThreshold); err != nil {
				return nil, err
			}
		}
		return NewDirectClient(ctx, pool.GenAIPool(), cfg.DirectModel, params, cfg.ImagePickPolicy)

	default:
		return nil, fmt.Errorf("unknown client mode %q", cfg.Mode)
	}
}
