package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/entities"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/services"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
)

// ErrInvalidInput means a payload was present but was not valid base64.
var ErrInvalidInput = errors.New("invalid image payload")

type GenerateImageUseCase struct {
	domainService *services.GenerationDomainService
	parameters    *valueobjects.GenerationParameters
}

func NewGenerateImageUseCase(
	domainService *services.GenerationDomainService,
	parameters *valueobjects.GenerationParameters,
) *GenerateImageUseCase {
	if parameters == nil {
		parameters = valueobjects.DefaultGenerationParameters()
	}
	return &GenerateImageUseCase{
		domainService: domainService,
		parameters:    parameters,
	}
}

type GenerateImageInput struct {
	OutfitBase64   string
	OutfitMimeType string
	PersonBase64   string
	PersonMimeType string
}

type GenerateImageOutput struct {
	RequestID   entities.GenerationRequestID
	ImageBase64 string
	MimeType    string
	Text        string
}

func (uc *GenerateImageUseCase) Execute(ctx context.Context, input GenerateImageInput) (*GenerateImageOutput, error) {
	if strings.TrimSpace(input.OutfitBase64) == "" || strings.TrimSpace(input.PersonBase64) == "" {
		return nil, domain.ErrMissingInput
	}

	outfitImage, err := valueobjects.NewImageDataFromBase64(input.OutfitBase64, input.OutfitMimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: outfit image: %v", ErrInvalidInput, err)
	}

	personImage, err := valueobjects.NewImageDataFromBase64(input.PersonBase64, input.PersonMimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: person image: %v", ErrInvalidInput, err)
	}

	request, err := entities.NewGenerationRequest(outfitImage, personImage, uc.parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	result, err := uc.domainService.ProcessGeneration(ctx, request)
	if err != nil {
		return nil, err
	}

	return &GenerateImageOutput{
		RequestID:   request.ID(),
		ImageBase64: result.Image().ToBase64(),
		MimeType:    result.Image().MimeType(),
		Text:        result.Text(),
	}, nil
}
