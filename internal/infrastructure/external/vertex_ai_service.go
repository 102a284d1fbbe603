package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/genai"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/entities"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/repositories"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/model"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

type VertexAIService struct {
	projectID string
	location  string
	model     string
	useSDK    bool

	pool repositories.VertexAIClientPool

	baseURL     string
	httpClient  *http.Client
	tokenSource oauth2.TokenSource
	tokenMu     sync.Mutex
}

type VertexAIOption func(*VertexAIService)

// WithBaseURL replaces the regional aiplatform endpoint used in REST mode.
func WithBaseURL(baseURL string) VertexAIOption {
	return func(s *VertexAIService) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(client *http.Client) VertexAIOption {
	return func(s *VertexAIService) {
		s.httpClient = client
	}
}

// WithTokenSource skips the Application Default Credentials lookup.
func WithTokenSource(ts oauth2.TokenSource) VertexAIOption {
	return func(s *VertexAIService) {
		s.tokenSource = ts
	}
}

func NewVertexAIService(
	projectID, location, modelName string,
	useSDK bool,
	pool repositories.VertexAIClientPool,
	opts ...VertexAIOption,
) (*VertexAIService, error) {
	if useSDK && pool == nil {
		return nil, fmt.Errorf("client pool is required in SDK mode")
	}

	s := &VertexAIService{
		projectID:  projectID,
		location:   location,
		model:      modelName,
		useSDK:     useSDK,
		pool:       pool,
		baseURL:    regionalEndpoint(location),
		httpClient: &http.Client{Timeout: 300 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func regionalEndpoint(location string) string {
	if location == "" || location == "global" {
		return "https://aiplatform.googleapis.com"
	}
	return fmt.Sprintf("https://%s-aiplatform.googleapis.com", location)
}

func (s *VertexAIService) GenerateFashionImage(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error) {
	outfitKB, personKB := request.PayloadSizeKB()
	slog.InfoContext(ctx, "GenerateFashionImage",
		"requestID", request.ID(),
		"model", s.model,
		"useSDK", s.useSDK,
		"outfitKB", outfitKB,
		"personKB", personKB)

	if s.useSDK {
		return s.generateWithSDK(ctx, request)
	}
	return s.generateWithREST(ctx, request)
}

func (s *VertexAIService) generateWithSDK(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error) {
	client, err := s.pool.GetVertexAIClient(ctx)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(
			NewFashionParts(request.Prompt(), request.OutfitImage(), request.PersonImage()),
			genai.RoleUser,
		),
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, NewGenerateContentConfig(request.Parameters()))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	slog.InfoContext(ctx, "Vertex AI response", "candidatesCount", len(resp.Candidates))

	blob, text := ExtractImage(resp, valueobjects.PickFirstImage)
	if blob == nil {
		slog.WarnContext(ctx, "No image data in response", "responseText", text)
		return entities.NewGenerationResult(request.ID(), nil, text), nil
	}

	imageData, err := valueobjects.NewImageData(blob.Data, blob.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("failed to create image data: %w", err)
	}
	slog.InfoContext(ctx, "Image generated", "mimeType", blob.MIMEType, "sizeKB", len(blob.Data)/1024)

	return entities.NewGenerationResult(request.ID(), imageData, text), nil
}

func (s *VertexAIService) generateWithREST(ctx context.Context, request *entities.GenerationRequest) (*entities.GenerationResult, error) {
	accessToken, err := s.getAccessToken()
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	reqBody, err := json.Marshal(buildRESTRequest(request))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
		s.baseURL, s.projectID, s.location, s.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp.StatusCode, respBody)
	}

	var genResp model.GenerateContentResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	slog.InfoContext(ctx, "Vertex AI response", "candidatesCount", len(genResp.Candidates))

	inline, text := firstInlineData(&genResp)
	if inline == nil {
		slog.WarnContext(ctx, "No image data in response", "responseText", text)
		return entities.NewGenerationResult(request.ID(), nil, text), nil
	}

	imageData, err := valueobjects.NewImageDataFromBase64(inline.Data, inline.MimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	slog.InfoContext(ctx, "Image generated", "mimeType", inline.MimeType, "sizeKB", len(inline.Data)/1024)

	return entities.NewGenerationResult(request.ID(), imageData, text), nil
}

func buildRESTRequest(request *entities.GenerationRequest) *model.GenerateContentRequest {
	params := request.Parameters()

	modalities := make([]string, 0, len(params.ResponseModalities()))
	for _, m := range params.ResponseModalities() {
		modalities = append(modalities, string(m))
	}

	safety := make([]model.SafetySetting, 0, len(valueobjects.SafetyCategories))
	for _, category := range valueobjects.SafetyCategories {
		safety = append(safety, model.SafetySetting{
			Category:  category,
			Threshold: string(params.SafetyThreshold()),
		})
	}

	temperature := params.Temperature()
	topP := params.TopP()

	return &model.GenerateContentRequest{
		Contents: []model.Content{{
			Role: "user",
			Parts: []model.Part{
				{Text: request.Prompt()},
				{InlineData: &model.InlineData{
					MimeType: request.OutfitImage().MimeType(),
					Data:     request.OutfitImage().ToBase64(),
				}},
				{InlineData: &model.InlineData{
					MimeType: request.PersonImage().MimeType(),
					Data:     request.PersonImage().ToBase64(),
				}},
			},
		}},
		GenerationConfig: &model.GenerationConfig{
			MaxOutputTokens:    params.MaxOutputTokens(),
			Temperature:        &temperature,
			TopP:               &topP,
			ResponseModalities: modalities,
			ImageConfig: &model.ImageConfig{
				AspectRatio: params.AspectRatio(),
				ImageSize:   params.ImageSize(),
			},
		},
		SafetySettings: safety,
	}
}

// firstInlineData returns the first part of the first candidate carrying
// inline data, plus any text parts.
func firstInlineData(resp *model.GenerateContentResponse) (*model.InlineData, string) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ""
	}

	var sb strings.Builder
	var found *model.InlineData
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
		if found == nil && part.InlineData != nil && part.InlineData.Data != "" {
			found = part.InlineData
		}
	}
	return found, sb.String()
}

func parseErrorResponse(status int, body []byte) error {
	upstreamErr := &domain.UpstreamError{
		Message: fmt.Sprintf("API request failed with status %d", status),
		Err:     fmt.Errorf("status %d: %s", status, string(body)),
	}

	var errResp model.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		upstreamErr.Message = errResp.Error.Message
		if len(errResp.Error.Details) > 0 {
			upstreamErr.Details = errResp.Error.Details
		}
	}
	return upstreamErr
}

func (s *VertexAIService) getAccessToken() (string, error) {
	s.tokenMu.Lock()
	if s.tokenSource == nil {
		// トークンの更新はリクエストより長く生きるので Background を使う
		ts, err := google.DefaultTokenSource(context.Background(), cloudPlatformScope)
		if err != nil {
			s.tokenMu.Unlock()
			return "", fmt.Errorf("failed to find default credentials: %w", err)
		}
		s.tokenSource = ts
	}
	ts := s.tokenSource
	s.tokenMu.Unlock()

	token, err := ts.Token()
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}

	return token.AccessToken, nil
}

func (s *VertexAIService) Close() error {
	if s.pool != nil {
		return s.pool.Close()
	}
	return nil
}
