package lbcode

// Rect is an axis-aligned rectangle in grid X/Y.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns MaxX - MinX.
func (r Rect) Width() int { return r.MaxX - r.MinX }

// Height returns MaxY - MinY.
func (r Rect) Height() int { return r.MaxY - r.MinY }

// union returns the smallest Rect covering r and o.
func (r Rect) union(o Rect) Rect {
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Footprint returns the area a part anchored at p covers.
//
// AlongX parts extend toward +Y from the anchor; AlongY parts extend toward
// -Y, ending on the anchor row.
func Footprint(p GridPos, o Orientation) Rect {
	width, depth := o.Footprint()
	r := Rect{MinX: p.X, MaxX: p.X + width}
	if o == AlongY {
		r.MinY, r.MaxY = p.Y-(depth-1), p.Y
	} else {
		r.MinY, r.MaxY = p.Y, p.Y+depth
	}
	return r
}

// Bounds accumulates the bounding rectangle of all footprints seen.
// The zero value is empty.
type Bounds struct {
	rect Rect
	set  bool
}

// Include grows b to cover the footprint of a part at p.
func (b *Bounds) Include(p GridPos, o Orientation) {
	f := Footprint(p, o)
	if !b.set {
		b.rect, b.set = f, true
		return
	}
	b.rect = b.rect.union(f)
}

// Rect returns the accumulated rectangle. ok is false until the first
// Include, in which case the rectangle must not be used.
func (b Bounds) Rect() (r Rect, ok bool) {
	return b.rect, b.set
}

// Empty reports whether nothing has been included yet.
func (b Bounds) Empty() bool { return !b.set }
