package external

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/services"
)

// stubVertexPool hands out a client that talks to an httptest server.
type stubVertexPool struct {
	client *genai.Client
}

func (p *stubVertexPool) GetVertexAIClient(ctx context.Context) (*genai.Client, error) {
	return p.client, nil
}

func (p *stubVertexPool) Close() error {
	return nil
}

func newSDKService(t *testing.T, handler http.HandlerFunc) *VertexAIService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  srv.Client(),
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	})
	require.NoError(t, err)

	svc, err := NewVertexAIService("demo-project", "us-central1", "gemini-2.5-flash-image", true, &stubVertexPool{client: client})
	require.NoError(t, err)
	return svc
}

func TestVertexAIService_SDK_Success(t *testing.T) {
	svc := newSDKService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash-image:generateContent"), r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"done"},{"inlineData":{"mimeType":"image/png","data":"Q0M="}},{"inlineData":{"mimeType":"image/png","data":"RA=="}}]}}]}`)
	})

	result, err := svc.GenerateFashionImage(context.Background(), newTestRequest(t))
	require.NoError(t, err)
	require.True(t, result.HasImage())

	// 最初の画像が採用される
	assert.Equal(t, "Q0M=", result.Image().ToBase64())
	assert.Equal(t, "image/png", result.Image().MimeType())
	assert.Equal(t, "done", result.Text())
}

func TestVertexAIService_SDK_NoImage(t *testing.T) {
	svc := newSDKService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"sorry"}]}}]}`)
	})

	result, err := svc.GenerateFashionImage(context.Background(), newTestRequest(t))
	require.NoError(t, err)
	assert.False(t, result.HasImage())
	assert.Equal(t, "sorry", result.Text())
}

func TestVertexAIService_SDK_ErrorStatus(t *testing.T) {
	svc := newSDKService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"code":429,"message":"Resource exhausted","status":"RESOURCE_EXHAUSTED","details":[{"reason":"quota"}]}}`)
	})

	_, err := services.NewGenerationDomainService(svc).ProcessGeneration(context.Background(), newTestRequest(t))
	require.Error(t, err)

	var upstreamErr *domain.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, "Resource exhausted", upstreamErr.Message)
	assert.NotNil(t, upstreamErr.Details)

	var apiErr genai.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Code)
}
