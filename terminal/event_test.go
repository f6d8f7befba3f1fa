package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_String(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewRuneEvent('a', ModNone), "key 'a'"},
		{NewRuneEvent('a', ModCtrl|ModAlt), "key ctrl+alt+'a'"},
		{NewKeyEvent(KeyUp, ModShift), "key shift+up"},
		{NewKeyEvent(KeyF5, ModNone), "key f5"},
		{NewResizeEvent(80, 24), "resize 80x24"},
		{Event{Type: EventPaste, Text: "hi\n"}, `paste "hi\n"`},
		{Event{Type: EventFocusLost}, "focus_lost"},
		{Event{Type: EventMouse, MouseBtn: MouseBtnLeft, MouseAction: MouseActionPress, MouseX: 3, MouseY: 4}, "mouse press left (3,4)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ev.String())
	}
}

func TestNewResizeEvent(t *testing.T) {
	ev := NewResizeEvent(120, 40)
	assert.Equal(t, EventResize, ev.Type)
	assert.Equal(t, 120, ev.Width)
	assert.Equal(t, 40, ev.Height)
}

func TestInternalEvent_Kinds(t *testing.T) {
	assert.True(t, Public(NewRuneEvent('x', ModNone)).IsPublic())

	cp := CursorPosition(5, 7)
	assert.False(t, cp.IsPublic())
	assert.Equal(t, 5, cp.Col)
	assert.Equal(t, 7, cp.Row)

	assert.False(t, InternalEvent{Kind: InternalDeviceAttributes}.IsPublic())
}

func TestKeyNames_RoundTrip(t *testing.T) {
	for k := KeyEscape; k <= KeyCtrlUnderscore; k++ {
		name := KeyName(k)
		if !assert.NotEmpty(t, name, "key %d has no name", k) {
			continue
		}
		got, ok := KeyByName(name)
		assert.True(t, ok, name)
		assert.Equal(t, k, got, name)
		assert.Equal(t, name, k.String())
	}
}

func TestKeyByName_Aliases(t *testing.T) {
	k, ok := KeyByName("esc")
	assert.True(t, ok)
	assert.Equal(t, KeyEscape, k)

	k, ok = KeyByName("shift_tab")
	assert.True(t, ok)
	assert.Equal(t, KeyBacktab, k)

	_, ok = KeyByName("hyper_q")
	assert.False(t, ok)
}

func TestKeyNames_Generated(t *testing.T) {
	assert.Equal(t, "f12", KeyName(KeyF12))
	assert.Equal(t, "ctrl_q", KeyName(KeyCtrlQ))
	assert.Equal(t, "rune", KeyRune.String())
	assert.Equal(t, "", KeyName(KeyRune))
}

func TestModifier_String(t *testing.T) {
	assert.Equal(t, "", ModNone.String())
	assert.Equal(t, "shift", ModShift.String())
	assert.Equal(t, "ctrl+alt+shift", (ModShift | ModAlt | ModCtrl).String())
}

func TestControlKey(t *testing.T) {
	assert.Equal(t, KeyCtrlA, controlKey(0x01))
	assert.Equal(t, KeyCtrlZ, controlKey(0x1a))
	assert.Equal(t, KeyBackspace, controlKey(0x08))
	assert.Equal(t, KeyEnter, controlKey(0x0d))
	assert.Equal(t, KeyEscape, controlKey(0x1b))
}
