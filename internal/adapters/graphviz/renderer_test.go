package graphviz_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/emicklei/dot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pipdeps/internal/adapters/graphviz"
	"go.trai.ch/pipdeps/internal/core/domain"
)

func flaskGraph() *domain.Graph {
	return domain.NewGraph(domain.NewRegistry(
		domain.PackageRecord{Name: "flask", Version: "3.0.2", Requires: []string{"jinja2", "blinker", "itsdangerous", "jinja2"}},
		domain.PackageRecord{Name: "jinja2", Version: "3.1.3", Requires: []string{"markupsafe"}, RequiredBy: []string{"flask"}},
		domain.PackageRecord{Name: "markupsafe", Version: "2.1.5", RequiredBy: []string{"jinja2"}},
		domain.PackageRecord{Name: "blinker", Version: "1.7.0", RequiredBy: []string{"flask"}},
	))
}

func TestBuild(t *testing.T) {
	g := graphviz.Build(flaskGraph())

	flask, ok := g.FindNodeById("flask")
	require.True(t, ok)
	assert.Equal(t, dot.Literal(`"flask\n3.0.2"`), flask.Value("label"))
	assert.Equal(t, "box", flask.Value("shape"))

	missing, ok := g.FindNodeById("itsdangerous")
	require.True(t, ok)
	assert.Equal(t, "dashed", missing.Value("style"))
	assert.Equal(t, "red", missing.Value("color"))

	jinja2, _ := g.FindNodeById("jinja2")
	markupsafe, _ := g.FindNodeById("markupsafe")
	assert.Len(t, g.FindEdges(flask, jinja2), 1, "duplicate requirements collapse into one edge")
	assert.Len(t, g.FindEdges(jinja2, markupsafe), 1)
	assert.Empty(t, g.FindEdges(markupsafe, jinja2))

	_, ok = g.FindNodeById("werkzeug")
	assert.False(t, ok)
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, graphviz.Encode(flaskGraph(), &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph"), out)
	assert.Contains(t, out, "rankdir")
	assert.Contains(t, out, `label="jinja2\n3.1.3"`)
	assert.Contains(t, out, `label="itsdangerous"`)
	assert.Equal(t, 4, strings.Count(out, "->"))
}

func TestEncode_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, graphviz.Encode(domain.NewGraph(domain.NewRegistry()), &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "digraph"))
	assert.NotContains(t, buf.String(), "->")
	assert.NotContains(t, buf.String(), "label")
}

func TestEncode_Escaping(t *testing.T) {
	g := domain.NewGraph(domain.NewRegistry(domain.PackageRecord{Name: `we"ird`, Version: `1\0`}))

	var buf bytes.Buffer
	require.NoError(t, graphviz.Encode(g, &buf))
	assert.Contains(t, buf.String(), `label="we\"ird\n1\\0"`)
}

func TestRenderer_DOT(t *testing.T) {
	r := graphviz.NewRendererWithBinary("pipdeps-no-such-graphviz")
	assert.True(t, r.IsAvailable(graphviz.FormatDOT))

	var buf bytes.Buffer
	require.NoError(t, r.Render(t.Context(), flaskGraph(), "DOT", &buf))
	assert.Contains(t, buf.String(), `label="markupsafe\n2.1.5"`)
}

func TestRenderer_Unavailable(t *testing.T) {
	r := graphviz.NewRendererWithBinary("pipdeps-no-such-graphviz")
	assert.False(t, r.IsAvailable("svg"))
	assert.False(t, r.IsAvailable("gif"))
	assert.Equal(t, []string{"dot", "svg", "png", "pdf"}, r.Formats())

	var buf bytes.Buffer
	err := r.Render(t.Context(), flaskGraph(), "svg", &buf)
	require.ErrorIs(t, err, domain.ErrRendererUnavailable)
	assert.Empty(t, buf.String())

	err = r.Render(t.Context(), flaskGraph(), "gif", &buf)
	require.ErrorIs(t, err, domain.ErrRendererUnavailable)
}

func TestRenderer_Image(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake graphviz relies on a POSIX shell")
	}

	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	script := filepath.Join(dir, "fake-dot")
	content := fmt.Sprintf("#!/bin/sh\necho \"$@\" > %q\necho '<svg>'\ncat > /dev/null\n", argsFile)
	require.NoError(t, os.WriteFile(script, []byte(content), 0o700)) //nolint:gosec // test script must be executable

	r := graphviz.NewRendererWithBinary(script)
	assert.True(t, r.IsAvailable("svg"))

	var buf bytes.Buffer
	require.NoError(t, r.Render(t.Context(), flaskGraph(), "svg", &buf))
	assert.Equal(t, "<svg>\n", buf.String())

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "-Tsvg\n", string(args))
}
