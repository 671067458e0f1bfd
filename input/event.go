// Package input turns device state into an ordered stream of action and
// mouse-motion events.
package input

// EventKind identifies the variant carried by an Event.
type EventKind int

const (
	KindActionPressed EventKind = iota + 1
	KindActionReleased
	KindMouseMoved
)

func (k EventKind) String() string {
	switch k {
	case KindActionPressed:
		return "action_pressed"
	case KindActionReleased:
		return "action_released"
	case KindMouseMoved:
		return "mouse_moved"
	default:
		return "unknown"
	}
}

// Action names understood by the locomotion controller.
const (
	ActionForward  = "Forward"
	ActionBackward = "Backward"
	ActionLeft     = "Left"
	ActionRight    = "Right"
	ActionJump     = "Jump"
)

// Event is one entry of the input log. Action is set for press/release
// events, DeltaX/DeltaY for mouse motion.
type Event struct {
	Kind   EventKind
	Action string
	DeltaX float64
	DeltaY float64
}

func ActionPressed(action string) Event {
	return Event{Kind: KindActionPressed, Action: action}
}

func ActionReleased(action string) Event {
	return Event{Kind: KindActionReleased, Action: action}
}

func MouseMoved(dx, dy float64) Event {
	return Event{Kind: KindMouseMoved, DeltaX: dx, DeltaY: dy}
}
