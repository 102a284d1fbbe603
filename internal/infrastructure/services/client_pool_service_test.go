package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/repositories"
)

func TestGenAIClientPool_ReusesClient(t *testing.T) {
	pool := NewClientPoolService(&repositories.AIClientConfig{
		APIKey:  "test-key",
		BaseURL: "http://127.0.0.1:1",
	})
	defer pool.Close()

	ctx := context.Background()

	var wg sync.WaitGroup
	clients := make([]*genai.Client, 8)
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := pool.GenAIPool().GetGenAIClient(ctx)
			assert.NoError(t, err)
			clients[i] = c
		}(i)
	}
	wg.Wait()

	require.NotNil(t, clients[0])
	for _, c := range clients[1:] {
		assert.Same(t, clients[0], c)
	}
}

func TestGenAIClientPool_RequiresAPIKey(t *testing.T) {
	pool := NewClientPoolService(&repositories.AIClientConfig{})

	_, err := pool.GenAIPool().GetGenAIClient(context.Background())
	assert.ErrorContains(t, err, "API key is not set")
}

func TestVertexAIClientPool_RequiresProject(t *testing.T) {
	pool := NewClientPoolService(&repositories.AIClientConfig{Location: "us-central1"})

	_, err := pool.VertexAIPool().GetVertexAIClient(context.Background())
	assert.ErrorContains(t, err, "project ID is not set")
}

func TestClientPoolService_CloseResetsClients(t *testing.T) {
	pool := NewClientPoolService(&repositories.AIClientConfig{APIKey: "test-key"})
	ctx := context.Background()

	first, err := pool.GenAIPool().GetGenAIClient(ctx)
	require.NoError(t, err)

	require.NoError(t, pool.Close())

	second, err := pool.GenAIPool().GetGenAIClient(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}
