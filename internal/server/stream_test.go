package server

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gocv.io/x/gocv"
)

func TestStreamHandler(t *testing.T) {
	frames := NewFrameHub()
	frames.Publish([]byte("jpeg-bytes"))

	ts := httptest.NewServer(New(Config{Frames: frames}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /api/stream error = %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/x-mixed-replace") {
		t.Errorf("unexpected Content-Type %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	var lines []string
	for len(lines) < 5 {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("failed reading stream: %v", err)
		}
		lines = append(lines, strings.TrimRight(line, "\r\n"))
	}

	if lines[0] != "--frame" {
		t.Errorf("expected boundary, got %q", lines[0])
	}
	if lines[1] != "Content-Type: image/jpeg" {
		t.Errorf("expected part content type, got %q", lines[1])
	}
	if lines[2] != "Content-Length: 10" {
		t.Errorf("expected content length 10, got %q", lines[2])
	}
	if lines[4] != "jpeg-bytes" {
		t.Errorf("expected frame payload, got %q", lines[4])
	}
}

func TestStreamHandler_MethodNotAllowed(t *testing.T) {
	handler := NewStreamHandler(NewFrameHub())

	req := httptest.NewRequest(http.MethodPost, "/api/stream", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestFrameHub_PublishMat(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping gocv encode in short mode")
	}

	mat := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer mat.Close()

	hub := NewFrameHub()
	if err := hub.PublishMat(&mat); err != nil {
		t.Fatalf("PublishMat() error = %v", err)
	}

	jpeg, _, err := hub.Next(context.Background(), 0)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(jpeg) < 2 || jpeg[0] != 0xFF || jpeg[1] != 0xD8 {
		t.Error("published frame should be a JPEG")
	}
}
