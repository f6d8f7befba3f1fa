package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInput = "a\x1b[1;5A\x1b[<0;3;4M\x1b[6;1R\xc3\xa9\xff\x1b[I"

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestRunDecode_PrintsEvents(t *testing.T) {
	var out bytes.Buffer
	events, errs, err := runDecode(strings.NewReader(sampleInput), &out, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, events)
	assert.Equal(t, 1, errs)

	want := strings.Join([]string{
		"key 'a'",
		"key ctrl+up",
		"mouse press left (2,3)",
		"key 'é'",
		`error malformed input sequence "\xff": invalid utf-8 start byte`,
		"focus_gained",
		"5 events, 1 errors",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
}

func TestRunDecode_ChunkingDoesNotChangeOutput(t *testing.T) {
	var whole bytes.Buffer
	_, _, err := runDecode(strings.NewReader(sampleInput), &whole, 0)
	require.NoError(t, err)

	// No chunk boundary leaves a lone ESC at the end of a chunk
	for _, chunk := range []int{3, 5, 6} {
		var split bytes.Buffer
		_, _, err := runDecode(strings.NewReader(sampleInput), &split, chunk)
		require.NoError(t, err)
		assert.Equal(t, whole.String(), split.String(), "chunk %d", chunk)
	}
}

func TestRunDecode_Empty(t *testing.T) {
	var out bytes.Buffer
	events, errs, err := runDecode(strings.NewReader(""), &out, 4)
	require.NoError(t, err)
	assert.Zero(t, events)
	assert.Zero(t, errs)
	assert.Equal(t, "0 events, 0 errors\n", out.String())
}

func TestDecodeCmd_FileArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.bin")
	require.NoError(t, os.WriteFile(path, []byte("\x1b[200~hi\x1b[201~"), 0o644))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"decode", path})
	require.NoError(t, root.Execute())

	assert.Equal(t, "paste \"hi\"\n1 events, 0 errors\n", out.String())
}

func TestDecodeCmd_Stdin(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetIn(strings.NewReader("\xe2\x82\xac"))
	root.SetOut(&out)
	root.SetArgs([]string{"decode", "--chunk", "1"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "key '€'\n1 events, 0 errors\n", out.String())
}

func TestDecodeCmd_MissingFile(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"decode", filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, root.Execute())
}

func TestRootCmd_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o644))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"decode", "--config", path})
	assert.ErrorContains(t, root.Execute(), "log_level")
}
