package domain

import "time"

// Kind classifies a transient distraction.
type Kind int

const (
	KindShape Kind = iota
	KindImage
)

// ShapeKind is a rendering hint for shape distractions.
type ShapeKind int

const (
	ShapeOval ShapeKind = iota
	ShapeRectangle
	ShapeTriangle
)

// Box is an axis-aligned bounding box in canvas cells.
type Box struct {
	X1, Y1, X2, Y2 float64
}

func NewBox(x, y, w, h float64) Box {
	return Box{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

func (b Box) W() float64       { return b.X2 - b.X1 }
func (b Box) H() float64       { return b.Y2 - b.Y1 }
func (b Box) CenterX() float64 { return (b.X1 + b.X2) / 2 }
func (b Box) CenterY() float64 { return (b.Y1 + b.Y2) / 2 }

func (b Box) Translate(dx, dy float64) Box {
	return Box{X1: b.X1 + dx, Y1: b.Y1 + dy, X2: b.X2 + dx, Y2: b.Y2 + dy}
}

// Recentered resizes the box around its unchanged center.
func (b Box) Recentered(w, h float64) Box {
	cx, cy := b.CenterX(), b.CenterY()
	return Box{X1: cx - w/2, Y1: cy - h/2, X2: cx + w/2, Y2: cy + h/2}
}

// Motion is the per-tick animation state of one object. DX and DY are
// direction components (±1), flipped on bounce.
type Motion struct {
	DX, DY    float64
	Speed     float64
	SizeDelta float64
}

// Object is one live distraction. Owned by the Registry from creation until
// removal; animators hold only its id.
type Object struct {
	ID        string
	Kind      Kind
	Shape     ShapeKind
	CreatedAt time.Time
	TTL       time.Duration
	Motion    Motion
	Box       Box
}

// SizeRange is the width/height envelope animated shapes must stay within.
type SizeRange struct {
	Min, Max float64
}

// Advance applies one animation step in place: translate by direction×speed,
// reflect the direction component on any viewport edge crossing, then
// grow/shrink by SizeDelta while the result stays inside env, recentering
// the box around its unchanged center.
func Advance(o *Object, viewport Box, env SizeRange) {
	o.Box = o.Box.Translate(o.Motion.DX*o.Motion.Speed, o.Motion.DY*o.Motion.Speed)
	if o.Box.X1 < viewport.X1 || o.Box.X2 > viewport.X2 {
		o.Motion.DX = -o.Motion.DX
	}
	if o.Box.Y1 < viewport.Y1 || o.Box.Y2 > viewport.Y2 {
		o.Motion.DY = -o.Motion.DY
	}
	if o.Motion.SizeDelta == 0 {
		return
	}
	w := o.Box.W() + o.Motion.SizeDelta
	h := o.Box.H() + o.Motion.SizeDelta
	if w > env.Min && w < env.Max && h > env.Min && h < env.Max {
		o.Box = o.Box.Recentered(w, h)
	}
}
