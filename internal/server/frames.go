package server

import (
	"context"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// FrameHub holds the most recent rendered frame as JPEG. Readers wait for a
// newer frame than the one they last saw.
type FrameHub struct {
	mu      sync.Mutex
	jpeg    []byte
	seq     uint64
	changed chan struct{}
}

// NewFrameHub creates an empty FrameHub.
func NewFrameHub() *FrameHub {
	return &FrameHub{changed: make(chan struct{})}
}

// PublishMat encodes frame as JPEG and publishes it.
func (h *FrameHub) PublishMat(frame *gocv.Mat) error {
	if frame == nil || frame.Empty() {
		return nil
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	// buf's memory is owned by OpenCV.
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())

	h.Publish(data)
	return nil
}

// Publish stores jpeg as the latest frame and wakes waiting readers.
func (h *FrameHub) Publish(jpeg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.jpeg = jpeg
	h.seq++
	close(h.changed)
	h.changed = make(chan struct{})
}

// Next blocks until a frame newer than after is available and returns it
// with its sequence number.
func (h *FrameHub) Next(ctx context.Context, after uint64) ([]byte, uint64, error) {
	for {
		h.mu.Lock()
		if h.seq > after {
			jpeg, seq := h.jpeg, h.seq
			h.mu.Unlock()
			return jpeg, seq, nil
		}
		changed := h.changed
		h.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, after, ctx.Err()
		case <-changed:
		}
	}
}
