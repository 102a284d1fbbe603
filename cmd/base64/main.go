package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
)

// images ディレクトリの画像を /api/generate-image 用の base64 に変換する。
// -outfit と -person を指定するとリクエストボディの JSON を標準出力に書く。
func main() {
	inDir := flag.String("in", "images", "入力ディレクトリ")
	outDir := flag.String("out", "encoded", "出力ディレクトリ")
	outfitPath := flag.String("outfit", "", "服の画像ファイル")
	personPath := flag.String("person", "", "人物の画像ファイル")
	flag.Parse()

	if *outfitPath != "" || *personPath != "" {
		if err := writeRequestBody(*outfitPath, *personPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	files, err := os.ReadDir(*inDir)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	validExtensions := []string{".jpg", ".png", ".jpeg", ".gif", ".webp"}

	for _, file := range files {
		if file.IsDir() || !slices.Contains(validExtensions, strings.ToLower(filepath.Ext(file.Name()))) {
			continue
		}
		payload, err := encode(filepath.Join(*inDir, file.Name()))
		if err != nil {
			log.Printf("skip %s: %v", file.Name(), err)
			continue
		}
		// 拡張子を除いたファイル名で保存
		name := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		if err := os.WriteFile(filepath.Join(*outDir, name+".txt"), []byte(payload.Base64), 0o644); err != nil {
			log.Fatal(err)
		}
		log.Printf("%s -> %s.txt (%s)", file.Name(), name, payload.MimeType)
	}
}

func encode(path string) (*valueobjects.EncodedPayload, error) {
	img, err := valueobjects.LoadUploadedImage(path)
	if err != nil {
		return nil, err
	}
	if err := valueobjects.ValidateUpload(img); err != nil {
		return nil, err
	}
	return valueobjects.EncodeUploadedImage(img)
}

func writeRequestBody(outfitPath, personPath string) error {
	if outfitPath == "" || personPath == "" {
		return fmt.Errorf("both -outfit and -person are required")
	}
	outfit, err := encode(outfitPath)
	if err != nil {
		return fmt.Errorf("outfit: %w", err)
	}
	person, err := encode(personPath)
	if err != nil {
		return fmt.Errorf("person: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(map[string]string{
		"outfitBase64":   outfit.Base64,
		"outfitMimeType": outfit.MimeType,
		"personBase64":   person.Base64,
		"personMimeType": person.MimeType,
	})
}
