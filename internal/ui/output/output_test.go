package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/creack/pty"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pipdeps/internal/ui/output"
)

func openTerminal(t *testing.T) *os.File {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pseudo-terminals unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})
	return tty
}

func TestInteractive(t *testing.T) {
	t.Setenv("CI", "")

	file, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	assert.False(t, output.Interactive(&bytes.Buffer{}), "buffers are never terminals")
	assert.False(t, output.Interactive(file), "regular files are not terminals")
	assert.True(t, output.Interactive(openTerminal(t)))
}

func TestInteractive_CI(t *testing.T) {
	tty := openTerminal(t)

	for _, ci := range []string{"true", "1"} {
		t.Setenv("CI", ci)
		assert.False(t, output.Interactive(tty), "CI=%s", ci)
	}
}

func TestColorProfile(t *testing.T) {
	t.Setenv("CI", "")
	tty := openTerminal(t)

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile(tty), "NO_COLOR should force Ascii profile")

	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.Ascii, output.ColorProfile(&bytes.Buffer{}), "redirected output stays plain")

	p := output.ColorProfile(tty)
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii, "should return a valid profile")
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)
	require.NotNil(t, out)

	_, _ = out.WriteString(out.String("test").Bold().String())
	assert.Equal(t, "test", buf.String())
}

func TestNew_Nil(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}
