// Package plugin runs external hook executables when match events happen.
package plugin

import "encoding/json"

// AllEvents subscribes a plugin to every event.
const AllEvents = "*"

// Manifest describes a plugin's metadata and the events it listens for.
type Manifest struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Executable  string          `json:"executable"`
	Events      []string        `json:"events"`
	Config      json.RawMessage `json:"config,omitempty"`
}

// Subscribes reports whether the manifest lists event or AllEvents.
func (m Manifest) Subscribes(event string) bool {
	for _, e := range m.Events {
		if e == event || e == AllEvents {
			return true
		}
	}
	return false
}

// Request is written to a plugin's stdin as one JSON document.
type Request struct {
	Event   string          `json:"event"`
	MatchID string          `json:"match_id"`
	State   json.RawMessage `json:"state"`
	Config  json.RawMessage `json:"config,omitempty"`
}

// Response is read from a plugin's stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
