package touch

import (
	"math"
	"sort"
	"sync"
	"time"
)

// Classification thresholds.
const (
	// TapDurationMS is the maximum contact duration for a tap.
	TapDurationMS = 200
	// DoubleTapIntervalMS is the window after a tap within which a second
	// tap classifies as a double-tap.
	DoubleTapIntervalMS = 300
	// PinchThreshold is the distance delta in pixels beyond which a
	// two-contact move classifies as a pinch.
	PinchThreshold = 10.0
	// RotationThreshold is the angle delta in degrees beyond which a
	// two-contact move classifies as a rotate.
	RotationThreshold = 5.0
	// duplicateWindowMS suppresses a second emission of the same gesture
	// type within this window. Multiple input paths (e.g. a synthetic
	// mouse event alongside a pointer event) can report one physical
	// action more than once.
	duplicateWindowMS = 50

	// wheelZoomRate converts a wheel deltaY into a pinch scale factor.
	wheelZoomRate = 0.001
	// minWheelScale floors the wheel-driven scale factor.
	minWheelScale = 0.1

	// mouseContactID is the synthetic contact identifier for the mouse
	// path. Touch and pointer identifiers from real devices are
	// non-negative, so the mouse contact never collides.
	mouseContactID = -1
)

// Phase is the contact-count classification state.
type Phase int

const (
	// PhaseIdle means no contacts are active.
	PhaseIdle Phase = iota
	// PhaseActive1 means exactly one contact is active.
	PhaseActive1
	// PhaseActive2 means exactly two contacts are active.
	PhaseActive2
	// PhaseActive3 means three or more contacts are active.
	PhaseActive3
)

// Recognizer binds to a Surface, tracks all active contact points, and
// classifies the evolving contact set into gesture events delivered to a
// callback. One Recognizer owns one contact table; binding two recognizers
// to the same surface produces duplicate events and is unsupported.
type Recognizer struct {
	surface  Surface
	callback func(GestureEvent)

	mu        sync.Mutex
	contacts  map[int]*ContactPoint
	bound     []boundListener
	destroyed bool
	pending   []GestureEvent

	// Session state. The two-finger baselines and drag eligibility reset
	// when the contact count returns to zero; the tap window and the
	// duplicate-suppression record survive across sessions because both
	// exist to relate consecutive sessions to each other.
	lastTapTime    int64
	lastEmitType   Type
	lastEmitTime   int64
	pinchBaseline  float64
	rotateBaseline float64
	dragEligible   bool
	mouseHeld      bool
}

type boundListener struct {
	kind EventKind
	id   int
}

// consumedKinds lists every event kind the recognizer listens for.
var consumedKinds = []EventKind{
	TouchStart, TouchMove, TouchEnd, TouchCancel,
	PointerDown, PointerMove, PointerUp, PointerCancel,
	MouseDown, MouseMove, MouseUp,
	Wheel,
	GestureStart, GestureChange, GestureEnd,
}

// NewRecognizer creates a Recognizer bound to surface. Listeners are
// registered immediately; callback receives one GestureEvent per classified
// gesture until Destroy is called.
func NewRecognizer(surface Surface, callback func(GestureEvent)) *Recognizer {
	r := &Recognizer{
		surface:  surface,
		callback: callback,
		contacts: make(map[int]*ContactPoint),
	}

	for _, kind := range consumedKinds {
		id := surface.AddListener(kind, r.Handle)
		r.bound = append(r.bound, boundListener{kind: kind, id: id})
	}

	return r
}

// Destroy removes all bound listeners and clears the contact table. It is
// idempotent; no callback fires after Destroy returns, even if stray events
// are still dispatched on the surface.
func (r *Recognizer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return
	}
	r.destroyed = true

	for _, b := range r.bound {
		r.surface.RemoveListener(b.kind, b.id)
	}
	r.bound = nil
	r.contacts = make(map[int]*ContactPoint)
	r.resetSession()
}

// Phase returns the current contact-count phase.
func (r *Recognizer) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch n := len(r.contacts); {
	case n == 0:
		return PhaseIdle
	case n == 1:
		return PhaseActive1
	case n == 2:
		return PhaseActive2
	default:
		return PhaseActive3
	}
}

// Handle processes one raw input event. Events are classified synchronously
// and in arrival order; malformed events (such as a touch event with no
// touches) are silent no-ops.
func (r *Recognizer) Handle(ev Event) {
	r.mu.Lock()

	if r.destroyed {
		r.mu.Unlock()
		return
	}

	if ev.Time == 0 {
		ev.Time = time.Now().UnixMilli()
	}

	switch ev.Kind {
	case TouchStart:
		for _, t := range ev.Touches {
			r.contactStart(t.ID, t.X, t.Y, t.Force, PointerTouch, ev.Time)
		}
	case TouchMove:
		for _, t := range ev.Touches {
			r.contactMove(t.ID, t.X, t.Y, t.Force, ev.Time)
		}
	case TouchEnd:
		for _, t := range ev.Touches {
			r.contactEnd(t.ID, ev.Time)
		}
	case TouchCancel:
		for _, t := range ev.Touches {
			r.contactCancel(t.ID)
		}

	case PointerDown:
		// Touch-type pointer events duplicate the touch path; skip them.
		if ev.PointerType != PointerTouch {
			r.contactStart(ev.PointerID, ev.X, ev.Y, ev.Force, ev.PointerType, ev.Time)
		}
	case PointerMove:
		if ev.PointerType != PointerTouch {
			r.contactMove(ev.PointerID, ev.X, ev.Y, ev.Force, ev.Time)
		}
	case PointerUp:
		if ev.PointerType != PointerTouch {
			r.contactEnd(ev.PointerID, ev.Time)
		}
	case PointerCancel:
		if ev.PointerType != PointerTouch {
			r.contactCancel(ev.PointerID)
		}

	case MouseDown:
		r.mouseHeld = true
		r.contactStart(mouseContactID, ev.X, ev.Y, ev.Force, PointerMouse, ev.Time)
	case MouseMove:
		if r.mouseHeld {
			r.contactMove(mouseContactID, ev.X, ev.Y, ev.Force, ev.Time)
		}
	case MouseUp:
		if r.mouseHeld {
			r.mouseHeld = false
			r.contactEnd(mouseContactID, ev.Time)
		}

	case Wheel:
		r.wheelZoom(ev)

	case GestureStart, GestureChange, GestureEnd:
		// Consumed so the platform's native gesture handling stays quiet.
	}

	pending := r.pending
	r.pending = nil
	callback := r.callback
	r.mu.Unlock()

	// Deliver outside the lock so a callback may call back into the
	// recognizer (including Destroy).
	for _, g := range pending {
		callback(g)
	}
}

// contactStart registers a new contact and runs the phase-entry
// classification for the resulting contact count.
func (r *Recognizer) contactStart(id int, x, y, force float64, pt PointerType, now int64) {
	if force <= 0 {
		force = 1.0
	}

	r.contacts[id] = &ContactPoint{
		ID:          id,
		X:           x,
		Y:           y,
		Force:       force,
		PointerType: pt,
		Time:        now,
		Started:     now,
	}

	switch len(r.contacts) {
	case 1:
		r.dragEligible = true
	case 2:
		// Drag classification only applies to sessions that stay
		// single-contact; a second finger ends that.
		r.dragEligible = false
		a, b := r.contactPair()
		r.pinchBaseline = Distance(a, b)
		r.rotateBaseline = AngleDegrees(a, b)
	case 3:
		// Emitted once on entry, never on three-finger moves.
		r.emit(TypeTripleTap, TripleTapParams{TouchCount: 3}, tripleTapConfidence, now)
	}
}

// contactMove updates a tracked contact and classifies the move according to
// the current contact count. Moves for unknown identifiers are ignored.
func (r *Recognizer) contactMove(id int, x, y, force float64, now int64) {
	c, ok := r.contacts[id]
	if !ok {
		return
	}

	c.X, c.Y = x, y
	if force > 0 {
		c.Force = force
	}
	c.Time = now

	switch len(r.contacts) {
	case 1:
		if r.dragEligible {
			r.emit(TypeDrag, DragParams{
				X:           c.X,
				Y:           c.Y,
				Force:       c.Force,
				PointerType: c.PointerType,
			}, dragConfidence, now)
		}
	case 2:
		r.classifyTwoContact(now)
	}
}

// classifyTwoContact disambiguates pinch, rotate, and pan against the
// baselines snapshotted when the second contact landed. Pinch is checked
// before rotation before pan: a move crossing both thresholds classifies as
// pinch. A real rotate that also drifts in distance will therefore read as
// pinch; that precedence is a compatibility contract, not an accident to
// correct here. A zero distance baseline (both contacts reported at the
// same point) disables pinch for the session, since the scale factor would
// divide by it.
func (r *Recognizer) classifyTwoContact(now int64) {
	a, b := r.contactPair()
	dist := Distance(a, b)
	angle := AngleDegrees(a, b)
	center := Midpoint(a, b)

	switch {
	case r.pinchBaseline > 0 && math.Abs(dist-r.pinchBaseline) > PinchThreshold:
		r.emit(TypePinch, PinchParams{
			ScaleFactor: dist / r.pinchBaseline,
			CenterX:     center.X,
			CenterY:     center.Y,
		}, pinchConfidence, now)
	case math.Abs(angle-r.rotateBaseline) > RotationThreshold:
		r.emit(TypeRotate, RotateParams{
			Rotation: angle - r.rotateBaseline,
			CenterX:  center.X,
			CenterY:  center.Y,
		}, rotateConfidence, now)
	default:
		r.emit(TypePan, PanParams{
			CenterX: center.X,
			CenterY: center.Y,
		}, panConfidence, now)
	}
}

// contactEnd removes a contact and, when it was the only one, runs tap
// versus double-tap disambiguation on its lifetime.
func (r *Recognizer) contactEnd(id int, now int64) {
	c, ok := r.contacts[id]
	if !ok {
		return
	}

	wasSingle := len(r.contacts) == 1
	delete(r.contacts, id)

	if wasSingle && now-c.Started < TapDurationMS {
		if r.lastTapTime != 0 && now-r.lastTapTime < DoubleTapIntervalMS {
			r.emit(TypeDoubleTap, DoubleTapParams{X: c.X, Y: c.Y}, doubleTapConfidence, now)
			// A double-tap closes its window; the next tap starts a
			// fresh single-tap window.
			r.lastTapTime = 0
		} else {
			r.emit(TypeTap, TapParams{X: c.X, Y: c.Y, PointerType: c.PointerType}, tapConfidence, now)
			r.lastTapTime = now
		}
	}

	if len(r.contacts) == 0 {
		r.resetSession()
	}
}

// contactCancel removes a contact without emitting any gesture.
func (r *Recognizer) contactCancel(id int) {
	if _, ok := r.contacts[id]; !ok {
		return
	}
	delete(r.contacts, id)
	if len(r.contacts) == 0 {
		r.resetSession()
	}
}

// wheelZoom emits a pinch for a wheel event. Each wheel tick zooms
// independently of the contact table, centered on the cursor.
func (r *Recognizer) wheelZoom(ev Event) {
	scale := 1.0 - ev.DeltaY*wheelZoomRate
	if scale < minWheelScale {
		scale = minWheelScale
	}

	r.emit(TypePinch, PinchParams{
		ScaleFactor: scale,
		CenterX:     ev.X,
		CenterY:     ev.Y,
	}, pinchConfidence, ev.Time)
}

// emit queues a gesture event for delivery unless an event of the same type
// was emitted within the duplicate-suppression window.
func (r *Recognizer) emit(t Type, params any, confidence float64, now int64) {
	if t == r.lastEmitType && now-r.lastEmitTime < duplicateWindowMS {
		return
	}
	r.lastEmitType = t
	r.lastEmitTime = now

	r.pending = append(r.pending, GestureEvent{
		Type:       t,
		Parameters: params,
		Confidence: confidence,
		Timestamp:  now,
	})
}

// resetSession clears the per-session state when the contact count returns
// to zero.
func (r *Recognizer) resetSession() {
	r.dragEligible = false
	r.pinchBaseline = 0
	r.rotateBaseline = 0
}

// contactPair returns the two live contacts as points, ordered by ascending
// identifier so the baseline and the current measurement use the same
// orientation.
func (r *Recognizer) contactPair() (Point, Point) {
	ids := make([]int, 0, len(r.contacts))
	for id := range r.contacts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return r.contacts[ids[0]].Position(), r.contacts[ids[1]].Position()
}
