package terminal

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
	MouseBtnWheelLeft
	MouseBtnWheelRight
)

// MouseAction represents the type of mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

var mouseButtonNames = [...]string{
	MouseBtnNone:       "none",
	MouseBtnLeft:       "left",
	MouseBtnMiddle:     "middle",
	MouseBtnRight:      "right",
	MouseBtnWheelUp:    "wheel_up",
	MouseBtnWheelDown:  "wheel_down",
	MouseBtnWheelLeft:  "wheel_left",
	MouseBtnWheelRight: "wheel_right",
}

var mouseActionNames = [...]string{
	MouseActionNone:    "none",
	MouseActionPress:   "press",
	MouseActionRelease: "release",
	MouseActionMove:    "move",
	MouseActionDrag:    "drag",
}

func (b MouseButton) String() string {
	if int(b) < len(mouseButtonNames) {
		return mouseButtonNames[b]
	}
	return "none"
}

func (a MouseAction) String() string {
	if int(a) < len(mouseActionNames) {
		return mouseActionNames[a]
	}
	return "none"
}

// mouseEvent builds a mouse event from the xterm button byte and 1-based coordinates
// Bits 0-1: button (3 = release in X10 encoding), bit 2 shift, bit 3 alt, bit 4 ctrl,
// bit 5 motion, bit 6 wheel
func mouseEvent(btn, x, y int, release bool) Event {
	ev := Event{Type: EventMouse, MouseX: x - 1, MouseY: y - 1}
	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isWheel := btn&64 != 0

	if isWheel {
		ev.MouseBtn = MouseBtnWheelUp + MouseButton(buttonID)
		ev.MouseAction = MouseActionPress
	} else {
		switch buttonID {
		case 0:
			ev.MouseBtn = MouseBtnLeft
		case 1:
			ev.MouseBtn = MouseBtnMiddle
		case 2:
			ev.MouseBtn = MouseBtnRight
		case 3:
			ev.MouseBtn = MouseBtnNone
		}

		switch {
		case release:
			ev.MouseAction = MouseActionRelease
		case isMotion && ev.MouseBtn != MouseBtnNone:
			ev.MouseAction = MouseActionDrag
		case isMotion:
			ev.MouseAction = MouseActionMove
		case ev.MouseBtn == MouseBtnNone:
			// X10 reports release as button 3 without telling which one
			ev.MouseAction = MouseActionRelease
		default:
			ev.MouseAction = MouseActionPress
		}
	}

	if btn&4 != 0 {
		ev.Modifiers |= ModShift
	}
	if btn&8 != 0 {
		ev.Modifiers |= ModAlt
	}
	if btn&16 != 0 {
		ev.Modifiers |= ModCtrl
	}
	return ev
}
