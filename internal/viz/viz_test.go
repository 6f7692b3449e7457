package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/body"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 4)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("dot (0,0) not lit")
	}

	// Out-of-range coordinates must be ignored, not panic.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(8, 0)
	c.Set(0, 16)
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Set(3, 3)
	c.Clear()

	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("clear left lit dots")
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 0)

	lit := 0
	for _, r := range c.Grid[0] {
		if r != 0x2800 {
			lit++
		}
	}
	if lit != 10 {
		t.Errorf("horizontal line lit %d cells, want 10", lit)
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	s := c.String()
	if strings.Count(s, "\n") != 2 {
		t.Errorf("expected 2 rows, got %q", s)
	}
}

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera(100)
	x, y, visible := cam.Project(body.Vec3{}, 160, 96)
	if !visible {
		t.Fatal("origin should be visible")
	}
	if x != 80 || y != 48 {
		t.Errorf("origin projected to (%d,%d), want screen center", x, y)
	}
}

func TestCameraProjectTopDown(t *testing.T) {
	// The default pitch looks down the y-axis, so z maps to screen-down.
	cam := NewCamera(100)
	_, yNear, _ := cam.Project(body.Vec3{Z: 50}, 160, 96)
	_, yFar, _ := cam.Project(body.Vec3{Z: -50}, 160, 96)
	if yNear <= 48 || yFar >= 48 {
		t.Errorf("z=+50 -> y=%d, z=-50 -> y=%d; want below/above center", yNear, yFar)
	}
}

func TestCameraZoomBounds(t *testing.T) {
	cam := NewCamera(10)
	for i := 0; i < 100; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom > 10 {
		t.Errorf("zoom exceeded cap: %v", cam.Zoom)
	}
	for i := 0; i < 100; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom < 0.1 {
		t.Errorf("zoom below floor: %v", cam.Zoom)
	}
}

func TestCameraZoomMagnifies(t *testing.T) {
	cam := NewCamera(100)
	x1, _, _ := cam.Project(body.Vec3{X: 20}, 160, 96)
	cam.ZoomIn()
	x2, _, _ := cam.Project(body.Vec3{X: 20}, 160, 96)
	if x2-80 <= x1-80 {
		t.Errorf("zooming in should push points outward: %d vs %d", x1, x2)
	}
}

func TestRadiusSeries(t *testing.T) {
	positions := [][]float64{
		{3, 4, 0, 1, 0, 0},
		{0, 0, 5, 2, 0, 0},
	}

	r0 := RadiusSeries(positions, 0)
	if len(r0) != 2 || math.Abs(r0[0]-5) > 1e-12 || math.Abs(r0[1]-5) > 1e-12 {
		t.Errorf("body 0 radii = %v, want [5 5]", r0)
	}

	r1 := RadiusSeries(positions, 1)
	if len(r1) != 2 || r1[0] != 1 || r1[1] != 2 {
		t.Errorf("body 1 radii = %v, want [1 2]", r1)
	}

	// Body index past the row width yields an empty series.
	if got := RadiusSeries(positions, 5); len(got) != 0 {
		t.Errorf("out-of-range body produced %v", got)
	}
}

func TestCoordinateSeries(t *testing.T) {
	positions := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}
	ys := CoordinateSeries(positions, 0, 1)
	if len(ys) != 2 || ys[0] != 2 || ys[1] != 5 {
		t.Errorf("y series = %v, want [2 5]", ys)
	}
}

func TestRenderSeries(t *testing.T) {
	if out := RenderSeries([]float64{1}, "x", 10, 3); !strings.Contains(out, "not enough") {
		t.Errorf("short series should report, got %q", out)
	}
	out := RenderSeries([]float64{1, 2, 3, 2, 1}, "radius", 20, 4)
	if !strings.Contains(out, "radius") {
		t.Errorf("caption missing from chart:\n%s", out)
	}
}
