package repositories

import (
	"context"
	"net/http"

	"google.golang.org/genai"
)

// AIクライアント共通設定
type AIClientConfig struct {
	ProjectID string
	Location  string

	// APIKey and BaseURL configure the Gemini API (API key) client.
	// BaseURL is empty for the public endpoint.
	APIKey  string
	BaseURL string

	// HTTPClient is only used by the API key client; the Vertex client
	// authenticates with Application Default Credentials.
	HTTPClient *http.Client
}

// Vertex AI Client Pool
// プロキシサーバーが使う Vertex AI バックエンドのクライアント
type VertexAIClientPool interface {
	GetVertexAIClient(ctx context.Context) (*genai.Client, error)

	Close() error
}

// GenAI Client Pool
// ブラウザ直結モードが使う API キー認証のクライアント
type GenAIClientPool interface {
	GetGenAIClient(ctx context.Context) (*genai.Client, error)

	Close() error
}

// Client Pool Service
// 全AIクライアントプールを統合管理するサービス
type ClientPoolService interface {
	VertexAIPool() VertexAIClientPool

	GenAIPool() GenAIClientPool

	Config() *AIClientConfig

	// 全リソースのクリーンアップ
	Close() error
}
