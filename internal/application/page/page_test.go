package page

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiroto302/image-generation-demo-vertexAI-web/internal/domain/valueobjects"
)

func pngUpload(t *testing.T, name string) *valueobjects.UploadedImage {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 600, 300))))
	return valueobjects.NewUploadedImage(name, buf.Bytes(), "image/png")
}

func TestUploadSlot_SelectFile(t *testing.T) {
	slot := NewUploadSlot("outfit")
	changes := 0
	slot.OnChange(func() { changes++ })

	first := pngUpload(t, "first.png")
	require.NoError(t, slot.SelectFile(first))
	assert.Same(t, first, slot.CurrentFile())
	assert.Equal(t, 1, changes)

	cfg, err := png.DecodeConfig(bytes.NewReader(slot.Preview()))
	require.NoError(t, err)
	assert.Equal(t, valueobjects.DefaultThumbnailEdge, cfg.Width)

	t.Run("rejected file keeps the previous one", func(t *testing.T) {
		err := slot.SelectFile(valueobjects.NewUploadedImage("doc.pdf", []byte("%PDF"), "application/pdf"))
		var vErr *valueobjects.UploadValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Please upload an image file", vErr.Message)

		err = slot.SelectFile(valueobjects.NewUploadedImage("huge.jpg", make([]byte, valueobjects.MaxUploadSize+1), "image/jpeg"))
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "File size must be less than 10MB", vErr.Message)

		assert.Same(t, first, slot.CurrentFile())
		assert.NotNil(t, slot.Preview())
		assert.Equal(t, 1, changes)
	})

	t.Run("undecodable image is accepted without preview", func(t *testing.T) {
		opaque := valueobjects.NewUploadedImage("raw.png", []byte("A"), "image/png")
		require.NoError(t, slot.SelectFile(opaque))
		assert.Same(t, opaque, slot.CurrentFile())
		assert.Nil(t, slot.Preview())
		assert.Equal(t, 2, changes)
	})

	t.Run("clear", func(t *testing.T) {
		slot.Clear()
		assert.Nil(t, slot.CurrentFile())
		assert.Nil(t, slot.Preview())
		assert.Equal(t, 3, changes)

		// 空の状態で Clear しても通知しない
		slot.Clear()
		assert.Equal(t, 3, changes)
	})
}

type stubClient struct {
	mu     sync.Mutex
	image  string
	err    error
	calls  int
	block  chan struct{}
	inside chan struct{}
}

func (s *stubClient) Generate(ctx context.Context, outfit, person *valueobjects.UploadedImage) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.inside != nil {
		s.inside <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	return s.image, s.err
}

func newTestController(t *testing.T, gen *stubClient) (*Controller, *UploadSlot, *UploadSlot) {
	t.Helper()
	outfit := NewUploadSlot("outfit")
	person := NewUploadSlot("person")
	return NewController(gen, outfit, person), outfit, person
}

func TestController_TriggerFollowsSlots(t *testing.T) {
	c, outfit, person := newTestController(t, &stubClient{image: "Q0M="})

	var states []State
	c.OnStateChange(func(s State) { states = append(states, s) })

	assert.False(t, c.TriggerEnabled())

	require.NoError(t, outfit.SelectFile(pngUpload(t, "o.png")))
	assert.False(t, c.TriggerEnabled())

	require.NoError(t, person.SelectFile(pngUpload(t, "p.png")))
	assert.True(t, c.TriggerEnabled())

	outfit.Clear()
	assert.False(t, c.TriggerEnabled())

	require.Len(t, states, 3)
	assert.False(t, states[0].Ready)
	assert.True(t, states[1].Ready)
	assert.False(t, states[2].Ready)
}

func TestController_Generate(t *testing.T) {
	t.Run("not ready", func(t *testing.T) {
		gen := &stubClient{image: "Q0M="}
		c, outfit, _ := newTestController(t, gen)
		require.NoError(t, outfit.SelectFile(pngUpload(t, "o.png")))

		_, err := c.Generate(context.Background())
		assert.ErrorIs(t, err, ErrNotReady)
		assert.Zero(t, gen.calls)
	})

	t.Run("success stores the result and re-enables the trigger", func(t *testing.T) {
		gen := &stubClient{image: "Q0M="}
		c, outfit, person := newTestController(t, gen)
		require.NoError(t, outfit.SelectFile(pngUpload(t, "o.png")))
		require.NoError(t, person.SelectFile(pngUpload(t, "p.png")))

		var states []State
		c.OnStateChange(func(s State) { states = append(states, s) })

		image, err := c.Generate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Q0M=", image)
		assert.Equal(t, "Q0M=", c.Result())
		assert.True(t, c.TriggerEnabled())

		require.Len(t, states, 2)
		assert.True(t, states[0].Busy)
		assert.False(t, states[0].TriggerEnabled())
		assert.False(t, states[1].Busy)
		assert.True(t, states[1].HasResult)
	})

	t.Run("failure keeps the previous result", func(t *testing.T) {
		gen := &stubClient{image: "Q0M="}
		c, outfit, person := newTestController(t, gen)
		require.NoError(t, outfit.SelectFile(pngUpload(t, "o.png")))
		require.NoError(t, person.SelectFile(pngUpload(t, "p.png")))

		_, err := c.Generate(context.Background())
		require.NoError(t, err)

		gen.err = errors.New("quota exceeded")
		_, err = c.Generate(context.Background())
		assert.EqualError(t, err, "quota exceeded")
		assert.Equal(t, "Q0M=", c.Result())
		assert.True(t, c.TriggerEnabled())
	})

	t.Run("second trigger while busy is rejected", func(t *testing.T) {
		gen := &stubClient{image: "Q0M=", block: make(chan struct{}), inside: make(chan struct{})}
		c, outfit, person := newTestController(t, gen)
		require.NoError(t, outfit.SelectFile(pngUpload(t, "o.png")))
		require.NoError(t, person.SelectFile(pngUpload(t, "p.png")))

		done := make(chan error, 1)
		go func() {
			_, err := c.Generate(context.Background())
			done <- err
		}()

		<-gen.inside
		assert.False(t, c.TriggerEnabled())
		_, err := c.Generate(context.Background())
		assert.ErrorIs(t, err, ErrBusy)

		close(gen.block)
		require.NoError(t, <-done)
		assert.Equal(t, 1, gen.calls)
		assert.True(t, c.TriggerEnabled())
	})
}

func TestDownloadName(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	assert.Equal(t, "fashion-image-1700000000123.png", DownloadName(ts))
}

func TestController_SaveResult(t *testing.T) {
	gen := &stubClient{image: "Q0M="}
	c, outfit, person := newTestController(t, gen)

	_, err := c.SaveResult(t.TempDir(), time.Now())
	assert.ErrorIs(t, err, ErrNoResult)

	require.NoError(t, outfit.SelectFile(pngUpload(t, "o.png")))
	require.NoError(t, person.SelectFile(pngUpload(t, "p.png")))
	_, err = c.Generate(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	ts := time.UnixMilli(42)
	path, err := c.SaveResult(dir, ts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fashion-image-42.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("CC"), data)
}
