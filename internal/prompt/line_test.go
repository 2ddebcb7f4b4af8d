package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
		wantErr    bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "YES", input: "YES\n", want: true},
		{name: "no", input: "n\n", defaultYes: true, want: false},
		{name: "empty default yes", input: "\n", defaultYes: true, want: true},
		{name: "empty default no", input: "\n", want: false},
		{name: "eof is no", input: "", defaultYes: true, want: false},
		{name: "retry then yes", input: "maybe\ny\n", want: true},
		{name: "invalid at eof", input: "maybe", wantErr: true},
		{name: "answer without newline", input: "y", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := NewLinePrompter(strings.NewReader(tt.input), &out).Confirm("Format /dev/sdb?", tt.defaultYes)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineConfirmPromptText(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("maybe\nn\n"), &out)
	_, err := p.Confirm("Continue?", false)
	require.NoError(t, err)
	assert.Equal(t, "Continue? [y/N]: Please enter y or n.\nContinue? [y/N]: ", out.String())
}

func TestLineSelect(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("9\n2\n"), &out)
	got, err := p.Select("Select snapshot", []string{"home.2", "home.1"})
	require.NoError(t, err)
	assert.Equal(t, "home.1", got)
	assert.Contains(t, out.String(), "  1) home.2\n  2) home.1\n")
	assert.Contains(t, out.String(), "Please enter a number between 1 and 2.")
}

func TestLineSelectErrors(t *testing.T) {
	_, err := NewLinePrompter(strings.NewReader("1\n"), &bytes.Buffer{}).Select("x", nil)
	assert.Error(t, err)

	_, err = NewLinePrompter(strings.NewReader(""), &bytes.Buffer{}).Select("x", []string{"a"})
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = NewLinePrompter(strings.NewReader("zz"), &bytes.Buffer{}).Select("x", []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid selection "zz"`)
}

func TestLineInput(t *testing.T) {
	var out bytes.Buffer
	value := "ArchBtrfs"
	p := NewLinePrompter(strings.NewReader("\nalice\n"), &out)
	require.NoError(t, p.Input("Volume label", &value))
	assert.Equal(t, "ArchBtrfs", value)

	name := ""
	require.NoError(t, p.Input("User name", &name))
	assert.Equal(t, "alice", name)
	assert.Equal(t, "Volume label [ArchBtrfs]: User name: ", out.String())
}

func TestLineInputEOFWithoutDefault(t *testing.T) {
	value := ""
	err := NewLinePrompter(strings.NewReader(""), &bytes.Buffer{}).Input("User name", &value)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestAutoYes(t *testing.T) {
	ok, err := AutoYes{}.Confirm("Reformat?", false)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = AutoYes{}.Select("Pick", []string{"a"})
	assert.ErrorIs(t, err, ErrSelectionRequired)

	value := "keep"
	require.NoError(t, AutoYes{}.Input("Label", &value))
	assert.Equal(t, "keep", value)
}

func TestNew(t *testing.T) {
	orig := isInteractive
	t.Cleanup(func() { isInteractive = orig })

	assert.IsType(t, AutoYes{}, New(true, strings.NewReader(""), &bytes.Buffer{}))

	isInteractive = func() bool { return true }
	assert.IsType(t, &HuhPrompter{}, New(false, strings.NewReader(""), &bytes.Buffer{}))

	isInteractive = func() bool { return false }
	assert.IsType(t, &LinePrompter{}, New(false, strings.NewReader(""), &bytes.Buffer{}))
}
