package page

import (
	"log/slog"
	"sync"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
)

// UploadSlot holds at most one selected image and its preview.
type UploadSlot struct {
	label string

	mu        sync.RWMutex
	file      *valueobjects.UploadedImage
	preview   []byte
	listeners []func()
}

func NewUploadSlot(label string) *UploadSlot {
	return &UploadSlot{label: label}
}

func (s *UploadSlot) Label() string {
	return s.label
}

// SelectFile replaces the held file when candidate passes ValidateUpload.
// On failure the previous file and preview stay as they were.
func (s *UploadSlot) SelectFile(candidate *valueobjects.UploadedImage) error {
	if err := valueobjects.ValidateUpload(candidate); err != nil {
		return err
	}

	// プレビューが作れなくてもファイル自体は受け付ける
	preview, err := valueobjects.Thumbnail(candidate.Data(), valueobjects.DefaultThumbnailEdge)
	if err != nil {
		slog.Debug("Preview not available", "slot", s.label, "file", candidate.Name(), "error", err)
		preview = nil
	}

	s.mu.Lock()
	s.file = candidate
	s.preview = preview
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *UploadSlot) Clear() {
	s.mu.Lock()
	changed := s.file != nil
	s.file = nil
	s.preview = nil
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// CurrentFile returns nil when the slot is empty.
func (s *UploadSlot) CurrentFile() *valueobjects.UploadedImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file
}

// Preview is a PNG thumbnail of the held file, or nil.
func (s *UploadSlot) Preview() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preview
}

func (s *UploadSlot) HasFile() bool {
	return s.CurrentFile() != nil
}

// OnChange registers fn to run after every select or clear that changed the slot.
func (s *UploadSlot) OnChange(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *UploadSlot) notify() {
	s.mu.RLock()
	listeners := append([]func(){}, s.listeners...)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
