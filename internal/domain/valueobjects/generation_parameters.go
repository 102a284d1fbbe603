package valueobjects

import (
	"fmt"
	"strings"
)

type SafetyThreshold string
type Modality string
type ImagePickPolicy string

const (
	ThresholdOff                 SafetyThreshold = "OFF"
	ThresholdBlockNone           SafetyThreshold = "BLOCK_NONE"
	ThresholdBlockOnlyHigh       SafetyThreshold = "BLOCK_ONLY_HIGH"
	ThresholdBlockMediumAndAbove SafetyThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	ThresholdBlockLowAndAbove    SafetyThreshold = "BLOCK_LOW_AND_ABOVE"
)

const (
	ModalityText  Modality = "TEXT"
	ModalityImage Modality = "IMAGE"
)

// When a response carries several inline images, PickFirstImage keeps the
// first one seen and PickLastImage the last one.
const (
	PickFirstImage ImagePickPolicy = "first"
	PickLastImage  ImagePickPolicy = "last"
)

var supportedAspectRatios = []string{"1:1", "2:3", "3:2", "3:4", "4:3", "9:16", "16:9", "21:9"}
var supportedImageSizes = []string{"1K", "2K", "4K"}

// SafetyCategories are the four harm categories the threshold is applied to.
var SafetyCategories = []string{
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_HARASSMENT",
}

type GenerationParameters struct {
	maxOutputTokens    int
	temperature        float32
	topP               float32
	responseModalities []Modality
	aspectRatio        string
	imageSize          string
	safetyThreshold    SafetyThreshold
}

func NewGenerationParameters(
	maxOutputTokens int,
	temperature float32,
	topP float32,
	aspectRatio string,
	imageSize string,
	safetyThreshold SafetyThreshold,
) (*GenerationParameters, error) {
	if maxOutputTokens < 1 || maxOutputTokens > 65536 {
		return nil, fmt.Errorf("maxOutputTokens must be between 1 and 65536, got %d", maxOutputTokens)
	}

	if temperature < 0 || temperature > 2 {
		return nil, fmt.Errorf("temperature must be between 0 and 2, got %v", temperature)
	}

	if topP <= 0 || topP > 1 {
		return nil, fmt.Errorf("topP must be in (0, 1], got %v", topP)
	}

	if !contains(supportedAspectRatios, aspectRatio) {
		return nil, fmt.Errorf("unsupported aspectRatio: %s", aspectRatio)
	}

	if !contains(supportedImageSizes, imageSize) {
		return nil, fmt.Errorf("unsupported imageSize: %s", imageSize)
	}

	threshold, err := ParseSafetyThreshold(string(safetyThreshold))
	if err != nil {
		return nil, err
	}

	return &GenerationParameters{
		maxOutputTokens:    maxOutputTokens,
		temperature:        temperature,
		topP:               topP,
		responseModalities: []Modality{ModalityText, ModalityImage},
		aspectRatio:        aspectRatio,
		imageSize:          imageSize,
		safetyThreshold:    threshold,
	}, nil
}

// DefaultGenerationParameters keeps the safety filters on. The demo setup
// (all four thresholds OFF) has to be asked for explicitly.
func DefaultGenerationParameters() *GenerationParameters {
	params, _ := NewGenerationParameters(
		32768,
		1,
		0.95,
		"1:1",
		"1K",
		ThresholdBlockMediumAndAbove,
	)
	return params
}

// WithSafetyThreshold returns a copy with a different threshold.
func (p *GenerationParameters) WithSafetyThreshold(threshold SafetyThreshold) (*GenerationParameters, error) {
	return NewGenerationParameters(p.maxOutputTokens, p.temperature, p.topP, p.aspectRatio, p.imageSize, threshold)
}

func ParseSafetyThreshold(value string) (SafetyThreshold, error) {
	switch t := SafetyThreshold(strings.ToUpper(strings.TrimSpace(value))); t {
	case ThresholdOff, ThresholdBlockNone, ThresholdBlockOnlyHigh, ThresholdBlockMediumAndAbove, ThresholdBlockLowAndAbove:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported safety threshold: %q", value)
	}
}

func ParseImagePickPolicy(value string) (ImagePickPolicy, error) {
	switch p := ImagePickPolicy(strings.ToLower(strings.TrimSpace(value))); p {
	case PickFirstImage, PickLastImage:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported image pick policy: %q", value)
	}
}

func (p *GenerationParameters) MaxOutputTokens() int {
	return p.maxOutputTokens
}

func (p *GenerationParameters) Temperature() float32 {
	return p.temperature
}

func (p *GenerationParameters) TopP() float32 {
	return p.topP
}

func (p *GenerationParameters) ResponseModalities() []Modality {
	return p.responseModalities
}

func (p *GenerationParameters) AspectRatio() string {
	return p.aspectRatio
}

func (p *GenerationParameters) ImageSize() string {
	return p.imageSize
}

func (p *GenerationParameters) SafetyThreshold() SafetyThreshold {
	return p.safetyThreshold
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
