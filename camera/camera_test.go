package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at origin, got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720)
	cam.Center(320, 96)

	// Camera center should map to screen center
	sx, sy := cam.WorldToScreen(320, 96)
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720)
	cam.Center(-200, 450)
	cam.SetZoom(2)

	// Test roundtrip at various positions
	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPan(t *testing.T) {
	cam := New(1280, 720)
	cam.SetZoom(2)

	cam.Pan(-200, 100)

	if cam.X != -100 || cam.Y != 50 {
		t.Errorf("expected camera at (-100, 50) after pan, got (%f, %f)", cam.X, cam.Y)
	}
}

func TestFollowConverges(t *testing.T) {
	cam := New(1280, 720)
	cam.FollowLerp = 0.5

	for i := 0; i < 30; i++ {
		cam.Follow(100, -60)
	}

	if math.Abs(float64(cam.X-100)) > 0.01 || math.Abs(float64(cam.Y+60)) > 0.01 {
		t.Errorf("expected camera near (100, -60), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestFollowSnapsWithFullLerp(t *testing.T) {
	cam := New(1280, 720)
	cam.FollowLerp = 1

	cam.Follow(42, 7)

	if cam.X != 42 || cam.Y != 7 {
		t.Errorf("expected camera at (42, 7), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720)

	cam.SetZoom(0.01) // Below min
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(10.0) // Above max
	if cam.Zoom != 4.0 {
		t.Errorf("expected zoom clamped to 4.0, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720)
	cam.Center(1280, 720)

	// Visible range in world coords: (640, 360) to (1920, 1080)

	// Point at camera center should be visible
	if !cam.IsVisible(1280, 720, 10) {
		t.Error("center should be visible")
	}

	// Point far outside should not be visible
	if cam.IsVisible(2400, 1300, 10) {
		t.Error("far point should not be visible")
	}

	// Point near edge with large half-extent should be visible
	if !cam.IsVisible(600, 720, 100) {
		t.Error("edge point with large half-extent should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720)
	cam.X = 500
	cam.Y = 500
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected position (0, 0), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
