package pip_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pipdeps/internal/adapters/pip"
	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
	"go.trai.ch/pipdeps/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// fakePip writes a shell script standing in for pip. It records its arguments in args.txt
// and prints the given testdata file.
func fakePip(t *testing.T, body string) (command []string, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake pip relies on a POSIX shell")
	}

	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args.txt")
	script := filepath.Join(dir, "pip")
	content := fmt.Sprintf("#!/bin/sh\necho \"$@\" > %q\n%s\n", argsFile, body)
	require.NoError(t, os.WriteFile(script, []byte(content), 0o700)) //nolint:gosec // test script must be executable
	return []string{script}, argsFile
}

func testdata(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("testdata", name))
	require.NoError(t, err)
	return path
}

func readArgs(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}

func TestSource_ListPackages(t *testing.T) {
	command, argsFile := fakePip(t, fmt.Sprintf("cat %q", testdata(t, "list.json")))

	names, err := pip.NewSource(command).ListPackages(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"certifi", "requests", "Jinja2"}, names)
	assert.Equal(t, "list --format=json --disable-pip-version-check", readArgs(t, argsFile))
}

func TestSource_ShowPackages(t *testing.T) {
	command, argsFile := fakePip(t, fmt.Sprintf("cat %q", testdata(t, "show.txt")))

	records, err := pip.NewSource(command).ShowPackages(t.Context(), []string{"requests", "certifi"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "requests", records[0][domain.FieldName])
	assert.Equal(t, "show --disable-pip-version-check requests certifi", readArgs(t, argsFile))
}

func TestSource_ShowPackages_StreamsStderrToVertex(t *testing.T) {
	command, _ := fakePip(t, fmt.Sprintf("echo 'WARNING: Package(s) not found: nope' >&2\ncat %q", testdata(t, "show.txt")))

	var stderr bytes.Buffer
	vertex := mocks.NewMockVertex(gomock.NewController(t))
	vertex.EXPECT().Stderr().Return(&stderr)
	ctx := ports.ContextWithVertex(t.Context(), vertex)

	records, err := pip.NewSource(command).ShowPackages(ctx, []string{"requests", "certifi", "nope"})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "WARNING: Package(s) not found: nope\n", stderr.String())
}

func TestSource_ShowPackages_NoNames(t *testing.T) {
	command, argsFile := fakePip(t, "exit 1")

	records, err := pip.NewSource(command).ShowPackages(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = os.Stat(argsFile)
	assert.True(t, os.IsNotExist(err), "pip must not be invoked without names")
}

func TestSource_CommandFails(t *testing.T) {
	command, _ := fakePip(t, "echo 'No module named pip' >&2\nexit 1")

	_, err := pip.NewSource(command).ListPackages(t.Context())
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "No module named pip", zErr.Metadata()["stderr"])
}

func TestSource_CommandMissing(t *testing.T) {
	command := []string{filepath.Join(t.TempDir(), "does-not-exist")}

	_, err := pip.NewSource(command).ListPackages(t.Context())
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestSource_EmptyCommand(t *testing.T) {
	_, err := pip.NewSource(nil).ListPackages(t.Context())
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
