package detector

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{FistLandmarks(), FingersLandmarks(3)})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 2 {
			t.Errorf("expected 2 hands, got %d", len(hands))
		}
	})

	t.Run("queued results are consumed before fixed hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{FistLandmarks()})
		mock.Enqueue(nil, []HandLandmarks{FingersLandmarks(2)})

		first, _ := mock.Detect(nil)
		second, _ := mock.Detect(nil)
		third, _ := mock.Detect(nil)

		if len(first) != 0 {
			t.Errorf("first call: expected no hands, got %d", len(first))
		}
		if len(second) != 1 || second[0] != FingersLandmarks(2) {
			t.Errorf("second call: expected queued two-finger hand, got %v", second)
		}
		if len(third) != 1 || third[0] != FistLandmarks() {
			t.Errorf("third call: expected fixed fist, got %v", third)
		}
		if mock.Calls() != 3 {
			t.Errorf("Calls() = %d, want 3", mock.Calls())
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("Close returns nil", func(t *testing.T) {
		if err := NewMockDetector().Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
	})
}

func TestFingersLandmarks(t *testing.T) {
	pips := [4]int{IndexPIP, MiddlePIP, RingPIP, PinkyPIP}

	for n := 0; n <= 5; n++ {
		lm := FingersLandmarks(n)

		for i, tip := range FingerTips[1:] {
			raised := lm.Points[tip].Y < lm.Points[pips[i]].Y
			if want := i < n; raised != want {
				t.Errorf("n=%d finger %d raised = %v, want %v", n, i+1, raised, want)
			}
		}

		thumbOut := lm.Points[ThumbTip].X < lm.Points[ThumbIP].X
		if want := n == 5; thumbOut != want {
			t.Errorf("n=%d thumb extended = %v, want %v", n, thumbOut, want)
		}
	}
}

func TestFingersLandmarks_Clamped(t *testing.T) {
	if FingersLandmarks(-2) != FistLandmarks() {
		t.Error("negative count should produce a fist")
	}
	if FingersLandmarks(9) != FingersLandmarks(5) {
		t.Error("count above five should produce an open hand")
	}
}

func TestFirst(t *testing.T) {
	if First(nil) != nil {
		t.Error("First(nil) should be nil")
	}

	hands := []HandLandmarks{FingersLandmarks(1), FingersLandmarks(2)}
	if got := First(hands); got != &hands[0] {
		t.Error("First should return the first detected hand")
	}
}

func TestParseResponse(t *testing.T) {
	t.Run("decodes hands", func(t *testing.T) {
		line := []byte(`{"hands":[{"handedness":"Left","score":0.9,"points":[{"x":0.1,"y":0.2,"z":0.3}]}]}` + "\n")

		hands, err := parseResponse(line)
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(hands))
		}
		if hands[0].Handedness != "Left" || hands[0].Score != 0.9 {
			t.Errorf("unexpected hand metadata: %+v", hands[0])
		}
		if hands[0].Points[Wrist] != (Point3D{X: 0.1, Y: 0.2, Z: 0.3}) {
			t.Errorf("unexpected wrist: %+v", hands[0].Points[Wrist])
		}
	})

	t.Run("no hands", func(t *testing.T) {
		hands, err := parseResponse([]byte(`{"hands":[]}`))
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if len(hands) != 0 {
			t.Errorf("expected no hands, got %d", len(hands))
		}
	})

	t.Run("service error", func(t *testing.T) {
		if _, err := parseResponse([]byte(`{"error":"model missing"}`)); err == nil {
			t.Error("expected error for service error response")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		if _, err := parseResponse([]byte(`not json`)); err == nil {
			t.Error("expected error for invalid JSON")
		}
	})
}

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{0xff, 0xd8, 0x01, 0x02}

	if err := writeFrame(&buf, payload); err != nil {
		t.Fatalf("writeFrame() error = %v", err)
	}

	out := buf.Bytes()
	if got := binary.BigEndian.Uint32(out[:4]); got != uint32(len(payload)) {
		t.Errorf("length prefix = %d, want %d", got, len(payload))
	}
	if !bytes.Equal(out[4:], payload) {
		t.Errorf("payload = %v, want %v", out[4:], payload)
	}
}

func TestMediaPipeDetector_Args(t *testing.T) {
	d := &MediaPipeDetector{config: DefaultConfig(), scriptPath: "/opt/hand_service.py"}

	args := d.args()
	want := []string{
		"/opt/hand_service.py",
		"--max-hands", "1",
		"--min-detection-confidence", "0.75",
		"--min-tracking-confidence", "0.5",
	}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestNewMediaPipeDetector_MissingScript(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScriptPath = "/nonexistent/hand_service.py"

	if _, err := NewMediaPipeDetector(cfg); err == nil {
		t.Error("expected error for missing script")
	}
}
