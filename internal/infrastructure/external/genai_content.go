package external

import (
	"strings"

	"google.golang.org/genai"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
)

// NewGenerateContentConfig maps generation parameters onto the SDK config.
// The threshold is applied to every category in valueobjects.SafetyCategories.
func NewGenerateContentConfig(params *valueobjects.GenerationParameters) *genai.GenerateContentConfig {
	if params == nil {
		params = valueobjects.DefaultGenerationParameters()
	}

	modalities := make([]string, 0, len(params.ResponseModalities()))
	for _, m := range params.ResponseModalities() {
		modalities = append(modalities, string(m))
	}

	safety := make([]*genai.SafetySetting, 0, len(valueobjects.SafetyCategories))
	for _, category := range valueobjects.SafetyCategories {
		safety = append(safety, &genai.SafetySetting{
			Category:  genai.HarmCategory(category),
			Threshold: genai.HarmBlockThreshold(params.SafetyThreshold()),
		})
	}

	return &genai.GenerateContentConfig{
		MaxOutputTokens:    int32(params.MaxOutputTokens()),
		Temperature:        genai.Ptr(params.Temperature()),
		TopP:               genai.Ptr(params.TopP()),
		ResponseModalities: modalities,
		SafetySettings:     safety,
		ImageConfig: &genai.ImageConfig{
			AspectRatio: params.AspectRatio(),
			ImageSize:   params.ImageSize(),
		},
	}
}

// NewFashionParts builds the user turn: prompt, outfit image, person image.
func NewFashionParts(prompt string, outfit, person *valueobjects.ImageData) []*genai.Part {
	return []*genai.Part{
		genai.NewPartFromText(prompt),
		{InlineData: &genai.Blob{MIMEType: outfit.MimeType(), Data: outfit.Data()}},
		{InlineData: &genai.Blob{MIMEType: person.MimeType(), Data: person.Data()}},
	}
}

// ExtractImage scans the parts of the first candidate in order and returns
// the image picked by policy along with the concatenated text parts.
// blob is nil when no part carries inline data.
func ExtractImage(resp *genai.GenerateContentResponse, policy valueobjects.ImagePickPolicy) (blob *genai.Blob, text string) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return nil, ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
		if part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		if blob == nil || policy == valueobjects.PickLastImage {
			blob = part.InlineData
		}
	}

	return blob, sb.String()
}
