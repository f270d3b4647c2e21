package wm

// Rect is a screen-space box.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Shrink insets the rect by border on every side.
func (r Rect) Shrink(border int) Rect {
	out := Rect{
		X: r.X + border,
		Y: r.Y + border,
		W: r.W - 2*border,
		H: r.H - 2*border,
	}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

func (r Rect) Area() int {
	return r.W * r.H
}

// Axis is the orientation of a split.
type Axis int

const (
	// AxisVertical divides a rect into a left and a right half.
	AxisVertical Axis = iota
	// AxisHorizontal divides a rect into a top and a bottom half.
	AxisHorizontal
)

func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

// Cycle selects a neighbor in an ordered sequence. It doubles as a child
// slot: Prev names the first (left/top) child, Next the second.
type Cycle int

const (
	CyclePrev Cycle = iota
	CycleNext
)

// Direction names one of the four screen edges.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Axis returns the split orientation the direction moves across.
func (d Direction) Axis() Axis {
	if d == DirLeft || d == DirRight {
		return AxisVertical
	}
	return AxisHorizontal
}

// Side returns the child slot the direction names.
func (d Direction) Side() Cycle {
	if d == DirLeft || d == DirUp {
		return CyclePrev
	}
	return CycleNext
}
