package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It returns queued results first, then the fixed hands set with SetHands.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	queue [][]HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect once the queue is empty.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// Enqueue appends per-call results. Each Detect call consumes one entry.
func (m *MockDetector) Enqueue(results ...[]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, results...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the next queued result, the configured hands or the configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// FistLandmarks returns a closed fist: every finger folded, thumb tucked in.
func FistLandmarks() HandLandmarks {
	return FingersLandmarks(0)
}

// FingersLandmarks returns a right hand, as seen in a mirrored frame, with
// n fingers raised. Fingers are raised in counting order: index, middle,
// ring, pinky, then thumb. n is clamped to 0..5.
func FingersLandmarks(n int) HandLandmarks {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}

	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}
	lm.Points[Wrist] = Point3D{X: 0.5, Y: 0.8}

	// Index, middle, ring, pinky: MCP x positions left to right in frame.
	bases := [4]struct {
		mcp int
		x   float64
	}{
		{IndexMCP, 0.45},
		{MiddleMCP, 0.50},
		{RingMCP, 0.55},
		{PinkyMCP, 0.60},
	}
	for i, b := range bases {
		raised := i < n
		x := b.x
		lm.Points[b.mcp] = Point3D{X: x, Y: 0.68}
		if raised {
			lm.Points[b.mcp+1] = Point3D{X: x, Y: 0.55}
			lm.Points[b.mcp+2] = Point3D{X: x, Y: 0.45}
			lm.Points[b.mcp+3] = Point3D{X: x, Y: 0.35, Z: 0.0}
		} else {
			// Curled: tip drops back below the PIP joint.
			lm.Points[b.mcp+1] = Point3D{X: x, Y: 0.64, Z: -0.05}
			lm.Points[b.mcp+2] = Point3D{X: x - 0.01, Y: 0.68, Z: -0.04}
			lm.Points[b.mcp+3] = Point3D{X: x - 0.02, Y: 0.71, Z: -0.02}
		}
	}

	// The thumb sits on the left of the hand in the mirrored frame.
	lm.Points[ThumbCMC] = Point3D{X: 0.44, Y: 0.76}
	lm.Points[ThumbMCP] = Point3D{X: 0.40, Y: 0.72}
	if n == 5 {
		lm.Points[ThumbIP] = Point3D{X: 0.36, Y: 0.68}
		lm.Points[ThumbTip] = Point3D{X: 0.32, Y: 0.65}
	} else {
		// Folded across the palm: tip is right of the IP joint.
		lm.Points[ThumbIP] = Point3D{X: 0.42, Y: 0.68}
		lm.Points[ThumbTip] = Point3D{X: 0.47, Y: 0.67}
	}

	return lm
}
