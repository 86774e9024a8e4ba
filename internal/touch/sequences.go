package touch

// Canned input-event sequences. Tests and demo clients replay these through
// a Surface instead of hand-writing event lists.

// TapSequence is a single short contact at (x, y) starting at the given
// millisecond timestamp.
func TapSequence(x, y float64, startMS int64) []Event {
	return []Event{
		{Kind: TouchStart, Touches: []Touch{{ID: 0, X: x, Y: y}}, Time: startMS},
		{Kind: TouchEnd, Touches: []Touch{{ID: 0, X: x, Y: y}}, Time: startMS + 50},
	}
}

// DoubleTapSequence is two short contacts at (x, y) with the second tap
// landing inside the double-tap window.
func DoubleTapSequence(x, y float64, startMS int64) []Event {
	first := TapSequence(x, y, startMS)
	second := TapSequence(x, y, startMS+150)
	return append(first, second...)
}

// DragSequence is one contact moving from (x0, y0) to (x1, y1) over the
// given number of intermediate move events, spaced stepMS apart.
func DragSequence(x0, y0, x1, y1 float64, steps int, startMS, stepMS int64) []Event {
	events := []Event{
		{Kind: TouchStart, Touches: []Touch{{ID: 0, X: x0, Y: y0}}, Time: startMS},
	}

	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		events = append(events, Event{
			Kind: TouchMove,
			Touches: []Touch{{
				ID: 0,
				X:  x0 + (x1-x0)*f,
				Y:  y0 + (y1-y0)*f,
			}},
			Time: startMS + int64(i)*stepMS,
		})
	}

	end := events[len(events)-1]
	events = append(events, Event{
		Kind:    TouchEnd,
		Touches: end.Touches,
		Time:    end.Time + stepMS,
	})
	return events
}

// PinchSequence is two contacts moving apart (outward) or together along the
// x axis, far enough to cross the pinch threshold.
func PinchSequence(outward bool, startMS int64) []Event {
	delta := 3 * PinchThreshold
	if !outward {
		delta = -delta
	}

	return []Event{
		{Kind: TouchStart, Touches: []Touch{{ID: 0, X: 100, Y: 100}}, Time: startMS},
		{Kind: TouchStart, Touches: []Touch{{ID: 1, X: 200, Y: 100}}, Time: startMS + 10},
		{Kind: TouchMove, Touches: []Touch{
			{ID: 0, X: 100 - delta/2, Y: 100},
			{ID: 1, X: 200 + delta/2, Y: 100},
		}, Time: startMS + 100},
		{Kind: TouchEnd, Touches: []Touch{
			{ID: 0, X: 100 - delta/2, Y: 100},
			{ID: 1, X: 200 + delta/2, Y: 100},
		}, Time: startMS + 300},
	}
}

// RotateSequence is two contacts turning 8 degrees around their midpoint at
// constant distance, crossing the rotation threshold without crossing the
// pinch threshold at any intermediate contact update.
func RotateSequence(startMS int64) []Event {
	return []Event{
		{Kind: TouchStart, Touches: []Touch{{ID: 0, X: 100, Y: 100}}, Time: startMS},
		{Kind: TouchStart, Touches: []Touch{{ID: 1, X: 200, Y: 100}}, Time: startMS + 10},
		{Kind: TouchMove, Touches: []Touch{
			{ID: 0, X: 100.49, Y: 93.04},
			{ID: 1, X: 199.51, Y: 106.96},
		}, Time: startMS + 100},
		{Kind: TouchEnd, Touches: []Touch{
			{ID: 0, X: 100.49, Y: 93.04},
			{ID: 1, X: 199.51, Y: 106.96},
		}, Time: startMS + 300},
	}
}

// TripleTouchSequence is three contacts landing in one touchstart event.
func TripleTouchSequence(startMS int64) []Event {
	touches := []Touch{
		{ID: 0, X: 100, Y: 100},
		{ID: 1, X: 150, Y: 100},
		{ID: 2, X: 200, Y: 100},
	}
	return []Event{
		{Kind: TouchStart, Touches: touches, Time: startMS},
		{Kind: TouchEnd, Touches: touches, Time: startMS + 300},
	}
}

// Replay dispatches every event in the sequence onto the target in order.
func Replay(target *EventTarget, events []Event) {
	for _, ev := range events {
		target.Dispatch(ev)
	}
}
