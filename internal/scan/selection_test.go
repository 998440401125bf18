package scan

import "testing"

func TestSelection_ZoomAndScale(t *testing.T) {
	sel := Selection{X: 33, Y: 66, W: 99, H: 33}

	img := sel.Zoom(0.5, 0.25)
	want := Selection{X: 66, Y: 264, W: 198, H: 132}
	if img != want {
		t.Errorf("Zoom: got %v, want %v", img, want)
	}

	if back := img.Scale(0.5, 0.25); back != sel {
		t.Errorf("Scale(Zoom(s)): got %v, want %v", back, sel)
	}
}

func TestSelection_ZoomIgnoresInvalidFactor(t *testing.T) {
	sel := Selection{X: 1, Y: 2, W: 3, H: 4}
	if got := sel.Zoom(0, 1); got != sel {
		t.Errorf("Zoom(0, 1): got %v, want %v", got, sel)
	}
}

func TestSelection_MoveTo(t *testing.T) {
	sel := Selection{X: 1, Y: 2, W: 3, H: 4}.MoveTo(10, 20)
	want := Selection{X: 10, Y: 20, W: 3, H: 4}
	if sel != want {
		t.Errorf("MoveTo: got %v, want %v", sel, want)
	}
}

func TestSelection_WithEndPoint(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		wantWH [2]float64
	}{
		{"down-right", 15, 30, [2]float64{5, 10}},
		{"up-left uses distance", 5, 10, [2]float64{5, 10}},
		{"same point keeps one pixel", 10, 20, [2]float64{1, 1}},
		{"sub-pixel keeps one pixel", 10.4, 20.2, [2]float64{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Selection{X: 10, Y: 20, W: 50, H: 25}.WithEndPoint(tt.x, tt.y)
			if sel.W != tt.wantWH[0] || sel.H != tt.wantWH[1] {
				t.Errorf("size: got %gx%g, want %gx%g", sel.W, sel.H, tt.wantWH[0], tt.wantWH[1])
			}
			if sel.X != 10 || sel.Y != 20 {
				t.Errorf("origin moved to (%g,%g)", sel.X, sel.Y)
			}
		})
	}
}

func TestSelection_Round(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want Bounds
	}{
		{"exact", Selection{X: 1, Y: 2, W: 3, H: 4}, Bounds{X: 1, Y: 2, W: 3, H: 4}},
		{"half rounds away from zero", Selection{X: 0.5, Y: 1.5, W: 2.5, H: 1.5}, Bounds{X: 1, Y: 2, W: 3, H: 2}},
		{"rounded edge pulled back", Selection{X: 6.6, Y: 0, W: 3.5, H: 1}, Bounds{X: 6, Y: 0, W: 4, H: 1}},
		{"rounded size capped", Selection{X: 0, Y: 0, W: 10.4, H: 8.6}, Bounds{X: 0, Y: 0, W: 10, H: 8}},
		{"tiny size grows to one", Selection{X: 3, Y: 3, W: 0.2, H: 0.4}, Bounds{X: 3, Y: 3, W: 1, H: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Round(10, 8); got != tt.want {
				t.Errorf("Round: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSelection_ClampWithoutRaster(t *testing.T) {
	sel := Selection{X: -5, Y: 100, W: 0.5, H: 300}.Clamp(0, 0)
	want := Selection{X: 0, Y: 100, W: 1, H: 300}
	if sel != want {
		t.Errorf("Clamp(0, 0): got %v, want %v", sel, want)
	}
}

func TestBounds_Contains(t *testing.T) {
	b := Bounds{X: 2, Y: 3, W: 2, H: 1}
	if !b.Contains(2, 3) || !b.Contains(3, 3) {
		t.Error("Contains should include the selection pixels")
	}
	if b.Contains(4, 3) || b.Contains(2, 4) || b.Contains(1, 3) {
		t.Error("Contains should exclude pixels outside the selection")
	}
	if b.Area() != 2 {
		t.Errorf("Area: got %d, want 2", b.Area())
	}
}
