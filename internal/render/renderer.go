package render

import (
	"sync"

	"gocv.io/x/gocv"
)

// Renderer presents frames to the player and reports key presses.
type Renderer interface {
	// Show presents an annotated frame.
	Show(frame *gocv.Mat) error
	// PollKey returns the key pressed since the last poll, or KeyNone.
	PollKey() int
	// Close releases the display.
	Close() error
}

// Window shows frames in an OpenCV highgui window.
type Window struct {
	window *gocv.Window
}

// NewWindow opens a window with the given title.
func NewWindow(title string) *Window {
	return &Window{window: gocv.NewWindow(title)}
}

func (w *Window) Show(frame *gocv.Mat) error {
	if frame == nil || frame.Empty() {
		return nil
	}
	w.window.IMShow(*frame)
	return nil
}

// PollKey waits at most one millisecond for a key press. Letter keys are
// reported in lower case.
func (w *Window) PollKey() int {
	key := w.window.WaitKey(1)
	if key < 0 {
		return KeyNone
	}
	key &= 0xFF
	if key >= 'A' && key <= 'Z' {
		key += 'a' - 'A'
	}
	return key
}

func (w *Window) Close() error {
	return w.window.Close()
}

// Headless discards frames and replays keys queued with Press.
// It backs windowless runs and tests.
type Headless struct {
	mu     sync.Mutex
	keys   []int
	frames int
	closed bool
}

// NewHeadless returns a renderer without a display.
func NewHeadless() *Headless {
	return &Headless{}
}

// Press queues a key to be returned by a later PollKey.
func (h *Headless) Press(key int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keys = append(h.keys, key)
}

func (h *Headless) Show(frame *gocv.Mat) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frames++
	return nil
}

func (h *Headless) PollKey() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.keys) == 0 {
		return KeyNone
	}
	key := h.keys[0]
	h.keys = h.keys[1:]
	return key
}

func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

// Frames returns how many frames were shown.
func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Closed reports whether Close was called.
func (h *Headless) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}
