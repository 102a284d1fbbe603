package page

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/application/client"
)

var (
	ErrNotReady = errors.New("both images must be selected")
	ErrBusy     = errors.New("a generation is already in progress")
	ErrNoResult = errors.New("no generated image yet")
)

// State is what the page shows: whether the trigger is usable, whether a
// request is in flight and whether a result can be downloaded.
type State struct {
	Ready     bool
	Busy      bool
	HasResult bool
}

func (s State) TriggerEnabled() bool {
	return s.Ready && !s.Busy
}

// Controller wires two upload slots to the generate trigger. Readiness is
// recomputed whenever a slot changes.
type Controller struct {
	outfit *UploadSlot
	person *UploadSlot
	client client.ImageGenerationClient

	mu        sync.Mutex
	busy      bool
	result    string
	listeners []func(State)
}

func NewController(generator client.ImageGenerationClient, outfit, person *UploadSlot) *Controller {
	c := &Controller{
		outfit: outfit,
		person: person,
		client: generator,
	}
	outfit.OnChange(c.emit)
	person.OnChange(c.emit)
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{
		Ready:     c.outfit.HasFile() && c.person.HasFile(),
		Busy:      c.busy,
		HasResult: c.result != "",
	}
}

func (c *Controller) TriggerEnabled() bool {
	return c.State().TriggerEnabled()
}

// OnStateChange registers fn to receive every state transition.
func (c *Controller) OnStateChange(fn func(State)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Controller) emit() {
	c.mu.Lock()
	state := c.stateLocked()
	listeners := append([]func(State){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// Generate runs one request through the client. The previous result is
// replaced only on success, and busy is always cleared afterwards.
func (c *Controller) Generate(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return "", ErrBusy
	}
	outfit := c.outfit.CurrentFile()
	person := c.person.CurrentFile()
	if outfit == nil || person == nil {
		c.mu.Unlock()
		return "", ErrNotReady
	}
	c.busy = true
	c.mu.Unlock()
	c.emit()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
		c.emit()
	}()

	start := time.Now()
	image, err := c.client.Generate(ctx, outfit, person)
	if err != nil {
		slog.ErrorContext(ctx, "Generation failed", "error", err, "elapsed", time.Since(start))
		return "", err
	}

	c.mu.Lock()
	c.result = image
	c.mu.Unlock()

	slog.InfoContext(ctx, "Generation finished", "elapsed", time.Since(start), "sizeKB", len(image)/1024)
	return image, nil
}

// Result is the last generated image as base64, or "".
func (c *Controller) Result() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *Controller) ResultBytes() ([]byte, error) {
	result := c.Result()
	if result == "" {
		return nil, ErrNoResult
	}
	data, err := base64.StdEncoding.DecodeString(result)
	if err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return data, nil
}

// DownloadName is the file name offered for the result.
func DownloadName(t time.Time) string {
	return fmt.Sprintf("fashion-image-%d.png", t.UnixMilli())
}

// SaveResult writes the result into dir under DownloadName(t) and returns the path.
func (c *Controller) SaveResult(dir string, t time.Time) (string, error) {
	data, err := c.ResultBytes()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, DownloadName(t))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, nil
}
