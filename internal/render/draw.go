package render

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/handcricket/internal/detector"
	"github.com/ayusman/handcricket/internal/match"
)

// Draw paints the hand skeleton and the score banner onto frame in place.
// hand may be nil.
func Draw(frame *gocv.Mat, hand *detector.HandLandmarks, st match.State) {
	if frame == nil || frame.Empty() {
		return
	}

	if hand != nil {
		drawHand(frame, hand)
	}
	drawBanner(frame)

	for _, l := range Banner(st, frame.Cols()) {
		if l.Text == "" {
			continue
		}
		gocv.PutText(frame, l.Text, l.Org, gocv.FontHersheySimplex, l.Scale, l.Color, l.Thickness)
	}
}

// drawBanner darkens the top of the frame behind the text.
func drawBanner(frame *gocv.Mat) {
	overlay := frame.Clone()
	defer overlay.Close()

	bar := image.Rect(0, 0, frame.Cols(), BannerHeight)
	gocv.Rectangle(&overlay, bar, colorBanner, -1)
	gocv.AddWeighted(overlay, 0.5, *frame, 0.5, 0, frame)
}

func drawHand(frame *gocv.Mat, hand *detector.HandLandmarks) {
	w, h := frame.Cols(), frame.Rows()
	pt := func(i int) image.Point {
		p := hand.Points[i]
		return image.Pt(int(p.X*float64(w)), int(p.Y*float64(h)))
	}

	for _, c := range detector.HandConnections {
		gocv.Line(frame, pt(c[0]), pt(c[1]), colorBone, 2)
	}
	for i := range hand.Points {
		gocv.Circle(frame, pt(i), 4, colorLandmark, -1)
	}
}
