package entities

import (
	"bytes"
	"image"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
)

func createTestImageData(t *testing.T) *valueobjects.ImageData {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	if err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}

	imageData, err := valueobjects.NewImageData(buf.Bytes(), "image/jpeg")
	if err != nil {
		t.Fatalf("Failed to create ImageData: %v", err)
	}

	return imageData
}

func TestNewGenerationRequest(t *testing.T) {
	outfitImage := createTestImageData(t)
	personImage := createTestImageData(t)
	params := valueobjects.DefaultGenerationParameters()

	tests := []struct {
		name        string
		outfitImage *valueobjects.ImageData
		personImage *valueobjects.ImageData
		parameters  *valueobjects.GenerationParameters
		wantErr     bool
	}{
		{
			name:        "valid request",
			outfitImage: outfitImage,
			personImage: personImage,
			parameters:  params,
			wantErr:     false,
		},
		{
			name:        "nil outfit image should fail",
			outfitImage: nil,
			personImage: personImage,
			parameters:  params,
			wantErr:     true,
		},
		{
			name:        "nil person image should fail",
			outfitImage: outfitImage,
			personImage: nil,
			parameters:  params,
			wantErr:     true,
		},
		{
			name:        "nil parameters should use default",
			outfitImage: outfitImage,
			personImage: personImage,
			parameters:  nil,
			wantErr:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request, err := NewGenerationRequest(tt.outfitImage, tt.personImage, tt.parameters)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGenerationRequest() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if request.ID() == "" {
					t.Errorf("Expected non-empty ID")
				}
				if request.OutfitImage() != tt.outfitImage {
					t.Errorf("OutfitImage not set correctly")
				}
				if request.PersonImage() != tt.personImage {
					t.Errorf("PersonImage not set correctly")
				}
				if request.Parameters() == nil {
					t.Errorf("Parameters should not be nil")
				}
				if request.Prompt() != FashionPrompt {
					t.Errorf("Prompt() = %q", request.Prompt())
				}
			}
		})
	}
}

func TestNewGenerationRequest_UniqueIDs(t *testing.T) {
	img := createTestImageData(t)
	seen := make(map[GenerationRequestID]bool)
	for i := 0; i < 100; i++ {
		req, err := NewGenerationRequest(img, img, nil)
		if err != nil {
			t.Fatalf("NewGenerationRequest() error = %v", err)
		}
		if seen[req.ID()] {
			t.Fatalf("duplicate ID %s", req.ID())
		}
		seen[req.ID()] = true
	}
}

func TestFashionPrompt(t *testing.T) {
	if !strings.HasPrefix(FashionPrompt, "Create professional e-commerce fashion photos.") {
		t.Errorf("unexpected prompt: %q", FashionPrompt)
	}
	if !strings.Contains(FashionPrompt, "outfit from the first image onto the model in the second image") {
		t.Errorf("prompt must describe the image order")
	}
}

func TestGenerationResult_HasImage(t *testing.T) {
	img := createTestImageData(t)

	if !NewGenerationResult("req", img, "").HasImage() {
		t.Errorf("Expected HasImage() to be true")
	}
	if NewGenerationResult("req", nil, "only text").HasImage() {
		t.Errorf("Expected HasImage() to be false")
	}
}
