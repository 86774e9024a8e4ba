package touch

// Type is the classified gesture type.
type Type string

const (
	TypeTap       Type = "TAP"
	TypeDoubleTap Type = "DOUBLE_TAP"
	TypeDrag      Type = "DRAG"
	TypePinch     Type = "PINCH"
	TypeRotate    Type = "ROTATE"
	TypePan       Type = "PAN"
	TypeTripleTap Type = "TRIPLE_TAP"
)

// Types lists every gesture type the recognizer can emit.
var Types = []Type{
	TypeTap, TypeDoubleTap, TypeDrag, TypePinch, TypeRotate, TypePan, TypeTripleTap,
}

// ValidType reports whether t is a recognized gesture type.
func ValidType(t Type) bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Per-type confidence constants. These are heuristic certainty scores, not
// statistical probabilities.
const (
	tapConfidence       = 0.98
	doubleTapConfidence = 0.97
	dragConfidence      = 0.90
	pinchConfidence     = 0.92
	rotateConfidence    = 0.88
	panConfidence       = 0.85
	tripleTapConfidence = 0.95
)

// GestureEvent is the classified output unit. Parameters holds the
// type-specific parameter struct for the event's Type.
type GestureEvent struct {
	Type       Type    `json:"type"`
	Parameters any     `json:"parameters"`
	Confidence float64 `json:"confidence"`
	Timestamp  int64   `json:"timestamp"`
}

// TapParams carries the parameters of a TAP event.
type TapParams struct {
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	PointerType PointerType `json:"pointerType"`
}

// DoubleTapParams carries the parameters of a DOUBLE_TAP event, using the
// ending contact's final position.
type DoubleTapParams struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DragParams carries the parameters of a DRAG event, reflecting the
// contact's position at the move that produced it.
type DragParams struct {
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Force       float64     `json:"force"`
	PointerType PointerType `json:"pointerType"`
}

// PinchParams carries the parameters of a PINCH event. ScaleFactor is the
// current distance divided by the distance when the second contact landed;
// the center is the midpoint of the two contacts (or the cursor position for
// wheel-driven pinches).
type PinchParams struct {
	ScaleFactor float64 `json:"scaleFactor"`
	CenterX     float64 `json:"centerX"`
	CenterY     float64 `json:"centerY"`
}

// RotateParams carries the parameters of a ROTATE event. Rotation is the
// delta in degrees from the angle when the second contact landed.
type RotateParams struct {
	Rotation float64 `json:"rotation"`
	CenterX  float64 `json:"centerX"`
	CenterY  float64 `json:"centerY"`
}

// PanParams carries the parameters of a PAN event.
type PanParams struct {
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
}

// TripleTapParams carries the parameters of a TRIPLE_TAP event.
type TripleTapParams struct {
	TouchCount int `json:"touchCount"`
}
