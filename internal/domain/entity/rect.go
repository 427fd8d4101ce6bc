package entity

// Rect is an axis-aligned rectangle in pixel coordinates.
// Y grows downward, so Top() < Bottom().
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect creates a rect from position and size
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Center returns the center point
func (r Rect) Center() (float64, float64) {
	return r.CenterX(), r.CenterY()
}

// Overlaps reports whether r and o share interior area.
// Rects that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// ContainsX reports whether o's horizontal span lies within r's.
func (r Rect) ContainsX(o Rect) bool {
	return o.X >= r.X && o.X+o.W <= r.X+r.W
}

// ContainsPointX reports whether x lies strictly inside r's horizontal span.
func (r Rect) ContainsPointX(x float64) bool {
	return x > r.X && x < r.X+r.W
}

// Offset returns r moved by (dx, dy)
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// SetBottom moves r vertically so that its bottom edge is at y
func (r *Rect) SetBottom(y float64) { r.Y = y - r.H }

// SetTop moves r vertically so that its top edge is at y
func (r *Rect) SetTop(y float64) { r.Y = y }

// SetLeft moves r horizontally so that its left edge is at x
func (r *Rect) SetLeft(x float64) { r.X = x }

// SetRight moves r horizontally so that its right edge is at x
func (r *Rect) SetRight(x float64) { r.X = x - r.W }

// ResizeHeight changes the height while keeping the bottom edge fixed.
func (r *Rect) ResizeHeight(h float64) {
	bottom := r.Bottom()
	r.H = h
	r.SetBottom(bottom)
}
