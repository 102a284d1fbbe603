package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/application/usecases"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/config"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/repositories"
	domainservices "github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/services"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/infrastructure/api"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/infrastructure/external"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/infrastructure/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(config.NewLogger(cfg.App, os.Stdout))

	if err := cfg.Server.Validate(); err != nil {
		slog.Error("Invalid server config", "error", err)
		os.Exit(1)
	}

	params, err := valueobjects.DefaultGenerationParameters().WithSafetyThreshold(cfg.Server.SafetyThreshold)
	if err != nil {
		slog.Error("Invalid generation parameters", "error", err)
		os.Exit(1)
	}

	// Initialize infrastructure layer
	clientPool := services.NewClientPoolService(&repositories.AIClientConfig{
		ProjectID: cfg.Server.ProjectID,
		Location:  cfg.Server.Location,
	})
	defer clientPool.Close()

	vertexAIService, err := external.NewVertexAIService(
		cfg.Server.ProjectID,
		cfg.Server.Location,
		cfg.Server.Model,
		cfg.Server.UseSDK,
		clientPool.VertexAIPool(),
	)
	if err != nil {
		slog.Error("Failed to create Vertex AI service", "error", err)
		os.Exit(1)
	}
	defer vertexAIService.Close()

	// Initialize domain and application layers
	generationService := domainservices.NewGenerationDomainService(vertexAIService)
	generateUseCase := usecases.NewGenerateImageUseCase(generationService, params)

	// Initialize API layer
	handler := api.NewRouter(
		api.NewGenerateHandler(generateUseCase, cfg.Server.MaxBodyBytes),
		api.NewHealthHandler(cfg.Server.ProjectID),
		api.RouterConfig{AllowedOrigins: cfg.Server.AllowedOrigins},
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// 画像生成は数十秒かかることがある
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		slog.Info("Starting server",
			"port", cfg.Server.Port,
			"project", cfg.Server.ProjectID,
			"location", cfg.Server.Location,
			"model", cfg.Server.Model,
			"apiMode", apiMode(cfg.Server.UseSDK),
			"allowedOrigins", cfg.Server.AllowedOrigins)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
}

func apiMode(useSDK bool) string {
	if useSDK {
		return "genai.Client"
	}
	return "REST API"
}
