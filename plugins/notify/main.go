// Package main provides a desktop notification plugin.
// It posts the final score when a match ends, via AppleScript on macOS and
// notify-send on Linux.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Request represents the input from the plugin executor.
type Request struct {
	Event   string          `json:"event"`
	MatchID string          `json:"match_id"`
	State   json.RawMessage `json:"state"`
	Config  json.RawMessage `json:"config"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type scoreState struct {
	UserScore     int    `json:"user_score"`
	ComputerScore int    `json:"computer_score"`
	Feedback      string `json:"feedback"`
}

// notifiers maps an operating system to the function that posts a notification.
var notifiers = map[string]func(title, body string) error{
	"darwin": notifyAppleScript,
	"linux":  notifySend,
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	var st scoreState
	if err := json.Unmarshal(req.State, &st); err != nil {
		writeErrorResponse(fmt.Sprintf("invalid state: %v", err))
		return
	}

	title, body := message(req.Event, st)
	if title == "" {
		writeSuccessResponse()
		return
	}

	notify, ok := notifiers[runtime.GOOS]
	if !ok {
		writeErrorResponse(fmt.Sprintf("notifications not supported on %s", runtime.GOOS))
		return
	}
	if err := notify(title, body); err != nil {
		writeErrorResponse(fmt.Sprintf("notify failed: %v", err))
		return
	}

	writeSuccessResponse()
}

// message returns the notification for event. The title is empty for
// events that do not notify.
func message(event string, st scoreState) (title, body string) {
	switch event {
	case "match_over":
		return "Hand Cricket", fmt.Sprintf("%s You %d - %d Computer",
			strings.TrimSuffix(st.Feedback, " Press 'R' to Restart"), st.UserScore, st.ComputerScore)
	case "innings_break":
		return "Hand Cricket", st.Feedback
	}
	return "", ""
}

// notifyAppleScript posts a notification through Notification Center.
func notifyAppleScript(title, body string) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	output, err := exec.Command("osascript", "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// notifySend posts a notification through libnotify.
func notifySend(title, body string) error {
	output, err := exec.Command("notify-send", title, body).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: errMsg})
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	json.NewEncoder(os.Stdout).Encode(Response{Success: true})
}
