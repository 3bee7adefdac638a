package lbcode

import "testing"

func TestFootprint(t *testing.T) {
	tests := []struct {
		name string
		p    GridPos
		o    Orientation
		want Rect
	}{
		{"along x", GridPos{X: 1, Y: 2}, AlongX, Rect{MinX: 1, MinY: 2, MaxX: 5, MaxY: 4}},
		{"along y extends toward -y", GridPos{X: 1, Y: 2}, AlongY, Rect{MinX: 1, MinY: -1, MaxX: 3, MaxY: 2}},
		{"z is ignored", GridPos{X: 0, Y: 0, Z: 9}, AlongX, Rect{MinX: 0, MinY: 0, MaxX: 4, MaxY: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Footprint(tt.p, tt.o); got != tt.want {
				t.Errorf("Footprint() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	var b Bounds
	if !b.Empty() {
		t.Fatal("zero Bounds should be empty")
	}
	if _, ok := b.Rect(); ok {
		t.Fatal("Rect() of empty Bounds should not be ok")
	}

	b.Include(GridPos{X: -2, Y: -1}, AlongX)
	r, ok := b.Rect()
	if !ok {
		t.Fatal("Rect() should be ok after Include")
	}
	if r.Width() != 4 || r.Height() != 2 {
		t.Errorf("single part extent = %dx%d, want 4x2", r.Width(), r.Height())
	}

	b.Include(GridPos{X: 2, Y: 3}, AlongY)
	r, _ = b.Rect()
	want := Rect{MinX: -2, MinY: -1, MaxX: 4, MaxY: 3}
	if r != want {
		t.Errorf("Rect() = %+v, want %+v", r, want)
	}
	if r.MinX > r.MaxX || r.MinY > r.MaxY {
		t.Errorf("Rect() not ordered: %+v", r)
	}
}

func TestBoundsIncludeInsideKeepsRect(t *testing.T) {
	var b Bounds
	b.Include(GridPos{X: 0, Y: 0}, AlongX)
	b.Include(GridPos{X: -4, Y: -4}, AlongX)
	before, _ := b.Rect()

	b.Include(GridPos{X: -2, Y: -2}, AlongX)
	after, _ := b.Rect()
	if before != after {
		t.Errorf("Include inside the box changed it: %+v -> %+v", before, after)
	}
}
