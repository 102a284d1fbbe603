package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
)

// FashionPrompt is sent with every generation. The outfit image comes first,
// then the person image.
const FashionPrompt = "Create professional e-commerce fashion photos. Place the outfit from the first image onto the model in the second image. Generate realistic full-body shots of the model wearing the outfit, adjusting lighting and shadows to match an outdoor environment."

type GenerationRequestID string

type GenerationRequest struct {
	id          GenerationRequestID
	outfitImage *valueobjects.ImageData
	personImage *valueobjects.ImageData
	prompt      string
	parameters  *valueobjects.GenerationParameters
	createdAt   time.Time
}

func NewGenerationRequest(
	outfitImage *valueobjects.ImageData,
	personImage *valueobjects.ImageData,
	parameters *valueobjects.GenerationParameters,
) (*GenerationRequest, error) {
	if outfitImage == nil {
		return nil, fmt.Errorf("outfit image is required")
	}

	if personImage == nil {
		return nil, fmt.Errorf("person image is required")
	}

	if parameters == nil {
		parameters = valueobjects.DefaultGenerationParameters()
	}

	return &GenerationRequest{
		id:          GenerationRequestID(uuid.NewString()),
		outfitImage: outfitImage,
		personImage: personImage,
		prompt:      FashionPrompt,
		parameters:  parameters,
		createdAt:   time.Now(),
	}, nil
}

func (r *GenerationRequest) ID() GenerationRequestID {
	return r.id
}

func (r *GenerationRequest) OutfitImage() *valueobjects.ImageData {
	return r.outfitImage
}

func (r *GenerationRequest) PersonImage() *valueobjects.ImageData {
	return r.personImage
}

func (r *GenerationRequest) Prompt() string {
	return r.prompt
}

func (r *GenerationRequest) Parameters() *valueobjects.GenerationParameters {
	return r.parameters
}

func (r *GenerationRequest) CreatedAt() time.Time {
	return r.createdAt
}

// PayloadSizeKB reports the base64 size of each image, for logging.
func (r *GenerationRequest) PayloadSizeKB() (outfitKB, personKB int) {
	return len(r.outfitImage.ToBase64()) / 1024, len(r.personImage.ToBase64()) / 1024
}
