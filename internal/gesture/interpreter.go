// Package gesture turns detected hand landmarks into game moves.
package gesture

import "github.com/ayusman/handcricket/internal/detector"

// Finger indexes into the result of Fingers.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
)

// FistValue is the move shown by a closed fist.
const FistValue = 6

// Fingers reports which fingers are extended.
//
// The thumb is extended when its tip lies left of the IP joint in the
// mirrored frame. Every other finger is extended when its tip is above
// (smaller Y than) the joint two positions closer to the palm.
func Fingers(h *detector.HandLandmarks) [5]bool {
	var out [5]bool
	if h == nil {
		return out
	}

	p := &h.Points
	out[Thumb] = p[detector.ThumbTip].X < p[detector.ThumbTip-1].X
	for i := Index; i <= Pinky; i++ {
		tip := detector.FingerTips[i]
		out[i] = p[tip].Y < p[tip-2].Y
	}
	return out
}

// Count returns the move shown by a hand. A nil hand yields ok=false.
// Zero extended fingers counts as FistValue, so the result is always 1..6.
func Count(h *detector.HandLandmarks) (move int, ok bool) {
	if h == nil {
		return 0, false
	}

	for _, up := range Fingers(h) {
		if up {
			move++
		}
	}
	if move == 0 {
		return FistValue, true
	}
	return move, true
}
