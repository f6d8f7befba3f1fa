package source

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_DeliversToListeners(t *testing.T) {
	e := NewEmitter(80, 24)

	var got []string
	var sizes [][2]int
	e.OnData(func(s string) { got = append(got, s) })
	e.OnResize(func(c, r int) { sizes = append(sizes, [2]int{c, r}) })

	assert.True(t, e.EmitData("ab"))
	assert.True(t, e.Resize(100, 30))
	assert.True(t, e.EmitData("c"))

	assert.Equal(t, []string{"ab", "c"}, got)
	assert.Equal(t, [][2]int{{100, 30}}, sizes)

	cols, rows, err := e.Size()
	require.NoError(t, err)
	assert.Equal(t, 100, cols)
	assert.Equal(t, 30, rows)
}

func TestEmitter_NoListener(t *testing.T) {
	e := NewEmitter(80, 24)
	assert.False(t, e.EmitData("x"))
	assert.False(t, e.Resize(10, 10))

	cols, _, _ := e.Size()
	assert.Equal(t, 10, cols, "size updates even without a listener")
}

func TestEmitter_DisposeRemovesListener(t *testing.T) {
	e := NewEmitter(80, 24)
	calls := 0
	d := e.OnData(func(string) { calls++ })
	r := e.OnResize(func(int, int) {})

	d.Dispose()
	d.Dispose() // idempotent
	assert.False(t, e.EmitData("x"))
	assert.Zero(t, calls)

	data, resize := e.Listening()
	assert.False(t, data)
	assert.True(t, resize)

	r.Dispose()
	_, resize = e.Listening()
	assert.False(t, resize)
}

func TestEmitter_NewerRegistrationSupersedes(t *testing.T) {
	e := NewEmitter(80, 24)
	var first, second int
	d1 := e.OnData(func(string) { first++ })
	d2 := e.OnData(func(string) { second++ })

	e.EmitData("x")
	assert.Zero(t, first, "superseded listener must starve")
	assert.Equal(t, 1, second)

	// Disposing the stale registration leaves the newer one in place
	d1.Dispose()
	assert.True(t, e.EmitData("y"))
	assert.Equal(t, 2, second)

	d2.Dispose()
	assert.False(t, e.EmitData("z"))
}

func TestEmitter_WriteIsOneChunk(t *testing.T) {
	e := NewEmitter(80, 24)
	var got []string
	e.OnData(func(s string) { got = append(got, s) })

	n, err := io.Copy(e, bytes.NewReader([]byte("\x1b[A")))
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.Equal(t, "\x1b[A", strings.Join(got, ""))
}

func TestQueries_Unsupported(t *testing.T) {
	var src Source = dataOnly{}
	_, _, err := Size(src)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, _, err = CursorPosition(src)
	assert.ErrorIs(t, err, ErrUnsupported)

	cols, rows, err := Size(NewEmitter(120, 40))
	require.NoError(t, err)
	assert.Equal(t, 120, cols)
	assert.Equal(t, 40, rows)
}

func TestDisposer_RunsOnce(t *testing.T) {
	n := 0
	d := Disposer(func() { n++ })
	d.Dispose()
	d.Dispose()
	assert.Equal(t, 1, n)
}

func TestModes_Sequences(t *testing.T) {
	assert.Empty(t, Modes{}.enableSeq())
	m := Modes{Mouse: true, Paste: true}
	assert.Equal(t, string(seqMouseOn)+string(seqPasteOn), string(m.enableSeq()))
	assert.Equal(t, string(seqPasteOff)+string(seqMouseOff), string(m.disableSeq()))
}

type dataOnly struct{}

func (dataOnly) OnData(func(string)) Disposable { return Disposer(func() {}) }
func (dataOnly) OnResize(func(int, int)) Disposable { return Disposer(func() {}) }

