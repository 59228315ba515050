// Package render draws the match overlay on camera frames and shows them.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ayusman/handcricket/internal/match"
)

// Key codes returned by PollKey.
const (
	KeyNone    = -1
	KeyQuit    = 'q'
	KeyRestart = 'r'
)

// BannerHeight is the height of the score bar at the top of the frame.
const BannerHeight = 100

// layoutWidth is the frame width the label positions are designed for.
const layoutWidth = 1280

var (
	colorUser     = color.RGBA{0, 255, 255, 0}
	colorComputer = color.RGBA{255, 255, 0, 0}
	colorTarget   = color.RGBA{0, 255, 0, 0}
	colorRole     = color.RGBA{255, 0, 255, 0}
	colorFeedback = color.RGBA{255, 255, 255, 0}
	colorBanner   = color.RGBA{0, 0, 0, 0}
	colorLandmark = color.RGBA{255, 0, 0, 0}
	colorBone     = color.RGBA{0, 255, 0, 0}
)

// Label is one line of text in the banner.
type Label struct {
	Text      string
	Org       image.Point
	Scale     float64
	Color     color.RGBA
	Thickness int
}

// Banner lays out the score bar for a frame of the given width.
// The target is shown only once it is set, the batting role only during play.
func Banner(st match.State, width int) []Label {
	x := func(px int) int {
		if width <= 0 {
			return px
		}
		return px * width / layoutWidth
	}

	labels := []Label{
		{Text: fmt.Sprintf("YOU: %d", st.UserScore), Org: image.Pt(x(30), 40), Scale: 1, Color: colorUser, Thickness: 2},
		{Text: fmt.Sprintf("COMP: %d", st.ComputerScore), Org: image.Pt(x(300), 40), Scale: 1, Color: colorComputer, Thickness: 2},
	}

	if target := st.Target(); target != match.NoTarget {
		labels = append(labels, Label{
			Text: fmt.Sprintf("TARGET: %d", target), Org: image.Pt(x(600), 40), Scale: 1, Color: colorTarget, Thickness: 2,
		})
	}

	if st.Phase == match.PhasePlaying {
		role := "You are BOWLING"
		if batting, _ := st.UserBatting(); batting {
			role = "You are BATTING"
		}
		labels = append(labels, Label{Text: role, Org: image.Pt(x(900), 40), Scale: 1, Color: colorRole, Thickness: 2})
	}

	labels = append(labels, Label{Text: st.Feedback, Org: image.Pt(x(30), 85), Scale: 0.9, Color: colorFeedback, Thickness: 2})
	return labels
}
