// Package main provides a match commentary plugin.
// It turns match events into a spoken line on macOS and prints it elsewhere.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
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

// Settings is the plugin's manifest configuration.
type Settings struct {
	Voice string `json:"voice"`
	Mute  bool   `json:"mute"`
}

// matchState holds the fields of a match snapshot the commentary needs.
type matchState struct {
	UserScore     int    `json:"user_score"`
	ComputerScore int    `json:"computer_score"`
	Feedback      string `json:"feedback"`
	Innings       *struct {
		Number      int  `json:"number"`
		Target      int  `json:"target"`
		UserBatting bool `json:"user_batting"`
	} `json:"innings"`
	LastBall *struct {
		Runs        int  `json:"runs"`
		UserBatting bool `json:"user_batting"`
	} `json:"last_ball"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	var settings Settings
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &settings); err != nil {
			writeErrorResponse(fmt.Sprintf("invalid config: %v", err))
			return
		}
	}

	var st matchState
	if len(req.State) > 0 {
		if err := json.Unmarshal(req.State, &st); err != nil {
			writeErrorResponse(fmt.Sprintf("invalid state: %v", err))
			return
		}
	}

	line := commentary(req.Event, st)
	if line == "" {
		writeSuccessResponse("")
		return
	}

	if !settings.Mute {
		if err := speak(line, settings.Voice); err != nil {
			writeErrorResponse(fmt.Sprintf("speak failed: %v", err))
			return
		}
	}
	writeSuccessResponse(line)
}

// commentary returns the line for event, or "" for events it stays quiet on.
func commentary(event string, st matchState) string {
	switch event {
	case "toss_won":
		return "You won the toss."
	case "toss_lost":
		return "The computer won the toss."
	case "choice":
		if st.Innings != nil && st.Innings.UserBatting {
			return "You will bat first."
		}
		return "You will bowl first."
	case "runs":
		if st.LastBall == nil {
			return ""
		}
		who := "The computer"
		if st.LastBall.UserBatting {
			who = "You"
		}
		if st.LastBall.Runs == 6 {
			return who + " hit a six!"
		}
		return fmt.Sprintf("%s scored %d.", who, st.LastBall.Runs)
	case "wicket":
		return "Out!"
	case "innings_break":
		if st.Innings == nil {
			return "Innings break."
		}
		return fmt.Sprintf("Innings break. Target is %d.", st.Innings.Target)
	case "match_over":
		switch {
		case st.UserScore > st.ComputerScore:
			return fmt.Sprintf("You won, %d to %d.", st.UserScore, st.ComputerScore)
		case st.ComputerScore > st.UserScore:
			return fmt.Sprintf("The computer won, %d to %d.", st.ComputerScore, st.UserScore)
		}
		return fmt.Sprintf("It's a draw at %d.", st.UserScore)
	case "restart":
		return "New match."
	}
	return ""
}

// speak says line aloud with the macOS say command and prints it on other systems.
func speak(line, voice string) error {
	if runtime.GOOS != "darwin" {
		fmt.Fprintln(os.Stderr, line)
		return nil
	}

	args := []string{line}
	if voice != "" {
		args = append([]string{"-v", voice}, args...)
	}
	output, err := exec.Command("say", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: errMsg})
}

// writeSuccessResponse writes a success response carrying the spoken line.
func writeSuccessResponse(line string) {
	resp := Response{Success: true}
	if line != "" {
		data, _ := json.Marshal(map[string]string{"line": line})
		resp.Data = data
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}
