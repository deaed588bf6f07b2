package canopy

import (
	"testing"

	"pgregory.net/rapid"
)

func TestWorldToScreen(t *testing.T) {
	v := Viewport{PanX: 100, PanY: 50, Scale: 2, Width: 800, Height: 600}
	sx, sy := v.WorldToScreen(10, 20)
	if !approxEqual(sx, 120, epsilon) || !approxEqual(sy, 90, epsilon) {
		t.Errorf("WorldToScreen(10, 20) = (%f, %f), want (120, 90)", sx, sy)
	}
}

func TestScreenToWorldZeroScale(t *testing.T) {
	v := Viewport{PanX: 10, PanY: 20}
	wx, wy := v.ScreenToWorld(15, 25)
	if wx != 5 || wy != 5 {
		t.Errorf("ScreenToWorld = (%f, %f), want (5, 5)", wx, wy)
	}
}

func TestScreenWorldRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := Viewport{
			PanX:  rapid.Float64Range(-5000, 5000).Draw(t, "panX"),
			PanY:  rapid.Float64Range(-5000, 5000).Draw(t, "panY"),
			Scale: rapid.Float64Range(0.25, 3).Draw(t, "scale"),
		}
		wx := rapid.Float64Range(-1e5, 1e5).Draw(t, "wx")
		wy := rapid.Float64Range(-1e5, 1e5).Draw(t, "wy")

		sx, sy := v.WorldToScreen(wx, wy)
		gx, gy := v.ScreenToWorld(sx, sy)
		if !approxEqual(gx, wx, 1e-6) || !approxEqual(gy, wy, 1e-6) {
			t.Fatalf("round trip (%f, %f) -> (%f, %f)", wx, wy, gx, gy)
		}
	})
}

func TestVisibleRect(t *testing.T) {
	tests := []struct {
		name   string
		v      Viewport
		margin float64
		want   Rect
	}{
		{
			"origin centered",
			Viewport{PanX: 400, PanY: 300, Scale: 1, Width: 800, Height: 600},
			100,
			Rect{Left: -500, Top: -400, Right: 500, Bottom: 400},
		},
		{
			"zoomed in",
			Viewport{PanX: 0, PanY: 0, Scale: 2, Width: 800, Height: 600},
			0,
			Rect{Left: 0, Top: 0, Right: 400, Bottom: 300},
		},
		{
			"zoomed out with margin",
			Viewport{PanX: -200, PanY: 100, Scale: 0.5, Width: 400, Height: 400},
			50,
			Rect{Left: 350, Top: -250, Right: 1250, Bottom: 650},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.VisibleRect(tt.margin)
			if !approxEqual(got.Left, tt.want.Left, epsilon) || !approxEqual(got.Top, tt.want.Top, epsilon) ||
				!approxEqual(got.Right, tt.want.Right, epsilon) || !approxEqual(got.Bottom, tt.want.Bottom, epsilon) {
				t.Errorf("VisibleRect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCenterOn(t *testing.T) {
	v := Viewport{Scale: 2, Width: 800, Height: 600}
	v.PanX, v.PanY = v.CenterOn(100, 50)
	sx, sy := v.WorldToScreen(100, 50)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("centered point at (%f, %f), want (400, 300)", sx, sy)
	}
}
