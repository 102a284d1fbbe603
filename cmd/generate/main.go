package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/application/client"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/application/page"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/config"
	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
)

// 服の画像と人物の画像から1枚生成して outDir に保存する
func main() {
	outfitPath := flag.String("outfit", "", "服の画像ファイル")
	personPath := flag.String("person", "", "人物の画像ファイル")
	outDir := flag.String("out", ".", "生成画像の保存先ディレクトリ")
	mode := flag.String("mode", "", "proxy または direct (未指定なら CLIENT_MODE)")
	timeout := flag.Duration("timeout", 5*time.Minute, "生成のタイムアウト")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load config", err)
	}
	slog.SetDefault(config.NewLogger(cfg.App, os.Stderr))

	if *mode != "" {
		cfg.Client.Mode = config.ClientMode(*mode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	generator, err := client.NewImageGenerationClient(ctx, &cfg.Client, nil)
	if err != nil {
		fatal("Failed to create client", err)
	}

	outfit := page.NewUploadSlot("outfit")
	person := page.NewUploadSlot("person")
	controller := page.NewController(generator, outfit, person)
	controller.OnStateChange(func(s page.State) {
		slog.Debug("State changed", "ready", s.Ready, "busy", s.Busy, "hasResult", s.HasResult)
	})

	if err := selectFile(outfit, *outfitPath); err != nil {
		fatal("Outfit image rejected", err)
	}
	if err := selectFile(person, *personPath); err != nil {
		fatal("Person image rejected", err)
	}

	slog.Info("Generating image", "mode", cfg.Client.Mode, "outfit", *outfitPath, "person", *personPath)
	if _, err := controller.Generate(ctx); err != nil {
		fatal("Failed to generate image", err)
	}

	path, err := controller.SaveResult(*outDir, time.Now())
	if err != nil {
		fatal("Failed to save image", err)
	}
	fmt.Println(path)
}

func selectFile(slot *page.UploadSlot, path string) error {
	if path == "" {
		return fmt.Errorf("-%s is required", slot.Label())
	}
	img, err := valueobjects.LoadUploadedImage(path)
	if err != nil {
		return err
	}
	return slot.SelectFile(img)
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
