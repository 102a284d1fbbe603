package valueobjects

import (
	"testing"
)

func TestNewGenerationParameters(t *testing.T) {
	tests := []struct {
		name            string
		maxOutputTokens int
		temperature     float32
		topP            float32
		aspectRatio     string
		imageSize       string
		threshold       SafetyThreshold
		wantErr         bool
	}{
		{
			name:            "valid parameters",
			maxOutputTokens: 32768,
			temperature:     1,
			topP:            0.95,
			aspectRatio:     "1:1",
			imageSize:       "1K",
			threshold:       ThresholdBlockMediumAndAbove,
			wantErr:         false,
		},
		{
			name:            "maxOutputTokens too low",
			maxOutputTokens: 0,
			temperature:     1,
			topP:            0.95,
			aspectRatio:     "1:1",
			imageSize:       "1K",
			threshold:       ThresholdOff,
			wantErr:         true,
		},
		{
			name:            "temperature too high",
			maxOutputTokens: 32768,
			temperature:     2.5,
			topP:            0.95,
			aspectRatio:     "1:1",
			imageSize:       "1K",
			threshold:       ThresholdOff,
			wantErr:         true,
		},
		{
			name:            "topP zero",
			maxOutputTokens: 32768,
			temperature:     1,
			topP:            0,
			aspectRatio:     "1:1",
			imageSize:       "1K",
			threshold:       ThresholdOff,
			wantErr:         true,
		},
		{
			name:            "unsupported aspect ratio",
			maxOutputTokens: 32768,
			temperature:     1,
			topP:            0.95,
			aspectRatio:     "5:7",
			imageSize:       "1K",
			threshold:       ThresholdOff,
			wantErr:         true,
		},
		{
			name:            "unsupported image size",
			maxOutputTokens: 32768,
			temperature:     1,
			topP:            0.95,
			aspectRatio:     "1:1",
			imageSize:       "8K",
			threshold:       ThresholdOff,
			wantErr:         true,
		},
		{
			name:            "unknown threshold",
			maxOutputTokens: 32768,
			temperature:     1,
			topP:            0.95,
			aspectRatio:     "1:1",
			imageSize:       "1K",
			threshold:       "SOMETIMES",
			wantErr:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerationParameters(tt.maxOutputTokens, tt.temperature, tt.topP, tt.aspectRatio, tt.imageSize, tt.threshold)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGenerationParameters() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultGenerationParameters(t *testing.T) {
	params := DefaultGenerationParameters()

	if params.MaxOutputTokens() != 32768 {
		t.Errorf("Expected maxOutputTokens 32768, got %d", params.MaxOutputTokens())
	}
	if params.Temperature() != 1 {
		t.Errorf("Expected temperature 1, got %v", params.Temperature())
	}
	if params.TopP() != 0.95 {
		t.Errorf("Expected topP 0.95, got %v", params.TopP())
	}
	if params.AspectRatio() != "1:1" || params.ImageSize() != "1K" {
		t.Errorf("Expected 1:1 / 1K, got %s / %s", params.AspectRatio(), params.ImageSize())
	}
	if params.SafetyThreshold() != ThresholdBlockMediumAndAbove {
		t.Errorf("Expected BLOCK_MEDIUM_AND_ABOVE, got %s", params.SafetyThreshold())
	}
	modalities := params.ResponseModalities()
	if len(modalities) != 2 || modalities[0] != ModalityText || modalities[1] != ModalityImage {
		t.Errorf("Expected [TEXT IMAGE], got %v", modalities)
	}
}

func TestGenerationParameters_WithSafetyThreshold(t *testing.T) {
	params := DefaultGenerationParameters()

	off, err := params.WithSafetyThreshold(ThresholdOff)
	if err != nil {
		t.Fatalf("WithSafetyThreshold() error = %v", err)
	}
	if off.SafetyThreshold() != ThresholdOff {
		t.Errorf("Expected OFF, got %s", off.SafetyThreshold())
	}
	if params.SafetyThreshold() != ThresholdBlockMediumAndAbove {
		t.Errorf("original parameters were modified")
	}
}

func TestParseSafetyThreshold(t *testing.T) {
	tests := []struct {
		in      string
		want    SafetyThreshold
		wantErr bool
	}{
		{in: "OFF", want: ThresholdOff},
		{in: " block_only_high ", want: ThresholdBlockOnlyHigh},
		{in: "BLOCK_LOW_AND_ABOVE", want: ThresholdBlockLowAndAbove},
		{in: "", wantErr: true},
		{in: "NEVER", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSafetyThreshold(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSafetyThreshold() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSafetyThreshold() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseImagePickPolicy(t *testing.T) {
	if p, err := ParseImagePickPolicy("First"); err != nil || p != PickFirstImage {
		t.Errorf("ParseImagePickPolicy(First) = %s, %v", p, err)
	}
	if p, err := ParseImagePickPolicy("last"); err != nil || p != PickLastImage {
		t.Errorf("ParseImagePickPolicy(last) = %s, %v", p, err)
	}
	if _, err := ParseImagePickPolicy("middle"); err == nil {
		t.Error("Expected error for unknown policy")
	}
}
