package services

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/entities"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/repositories"
)

const defaultUpstreamMessage = "Failed to generate image"

type GenerationDomainService struct {
	aiService repositories.ImageGenerationService
}

func NewGenerationDomainService(aiService repositories.ImageGenerationService) *GenerationDomainService {
	return &GenerationDomainService{
		aiService: aiService,
	}
}

// ProcessGeneration makes exactly one upstream call. Failures come back as
// *domain.UpstreamError, a successful call without an image as
// domain.ErrNoImageData.
func (s *GenerationDomainService) ProcessGeneration(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error) {
	if err := s.validateRequest(request); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	result, err := s.aiService.GenerateFashionImage(ctx, request)
	if err != nil {
		return nil, toUpstreamError(err)
	}

	if result == nil || !result.HasImage() {
		return nil, domain.ErrNoImageData
	}

	return result, nil
}

func (s *GenerationDomainService) validateRequest(request *entities.GenerationRequest) error {
	if request == nil || request.OutfitImage() == nil || request.PersonImage() == nil {
		return domain.ErrMissingInput
	}

	if request.Parameters() == nil {
		return fmt.Errorf("parameters are required")
	}

	return nil
}

func toUpstreamError(err error) *domain.UpstreamError {
	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = defaultUpstreamMessage
		}
		var details any
		if len(apiErr.Details) > 0 {
			details = apiErr.Details
		}
		return &domain.UpstreamError{Message: msg, Details: details, Err: err}
	}

	msg := err.Error()
	if msg == "" {
		msg = defaultUpstreamMessage
	}
	return &domain.UpstreamError{Message: msg, Err: err}
}
