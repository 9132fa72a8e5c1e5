package progrock_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"go.trai.ch/pipdeps/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
	"google.golang.org/protobuf/types/known/timestamppb"

	pipdepsprogrock "go.trai.ch/pipdeps/internal/adapters/telemetry/progrock"
)

func logUpdate(vertex string, stream progrock.LogStream, data string) *progrock.StatusUpdate {
	return &progrock.StatusUpdate{
		Logs: []*progrock.VertexLog{{Vertex: vertex, Stream: stream, Data: []byte(data)}},
	}
}

func TestDisplay_ReassemblesLines(t *testing.T) {
	sink := &recordingSink{}
	display := pipdepsprogrock.NewDisplay(sink)

	updates := []*progrock.StatusUpdate{
		{Vertexes: []*progrock.Vertex{{Id: "v1", Name: "pip show [1/2]"}}},
		logUpdate("v1", progrock.LogStream_STDERR, "WARNING: Package(s) "),
		logUpdate("v1", progrock.LogStream_STDERR, "not found: nope\r\nsecond"),
		logUpdate("v1", progrock.LogStream_STDOUT, "[debug] flask click\n"),
		{Vertexes: []*progrock.Vertex{{Id: "v1", Name: "pip show [1/2]", Completed: timestamppb.Now()}}},
		{Vertexes: []*progrock.Vertex{{Id: "v1", Name: "pip show [1/2]", Completed: timestamppb.Now()}}},
	}
	for _, u := range updates {
		require.NoError(t, display.WriteStatus(u))
	}
	require.NoError(t, display.Close())

	assert.Equal(t, []string{
		"STDERR pip show [1/2] WARNING: Package(s) not found: nope",
		"STDOUT pip show [1/2] [debug] flask click",
		"STDERR pip show [1/2] second",
		"done pip show [1/2]",
	}, sink.snapshot())
}

func TestDisplay_CloseFlushesPendingOutput(t *testing.T) {
	sink := &recordingSink{}
	display := pipdepsprogrock.NewDisplay(sink)

	require.NoError(t, display.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{{Id: "v1", Name: "pip list"}},
	}))
	require.NoError(t, display.WriteStatus(logUpdate("v1", progrock.LogStream_STDERR, "no newline")))
	assert.Empty(t, sink.snapshot())

	require.NoError(t, display.Close())
	assert.Equal(t, []string{"STDERR pip list no newline"}, sink.snapshot())
}

func TestDisplay_ReportsFailureAndCache(t *testing.T) {
	sink := &recordingSink{}
	display := pipdepsprogrock.NewDisplay(sink)

	msg := "pip command failed"
	require.NoError(t, display.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "a", Name: "pip list", Completed: timestamppb.Now(), Error: &msg},
			{Id: "b", Name: "load package cache", Completed: timestamppb.Now(), Cached: true},
			{Id: "c", Name: "save package cache"},
		},
	}))

	assert.Equal(t, []string{
		"failed pip list: pip command failed",
		"cached load package cache",
	}, sink.snapshot())
}

func TestConsole(t *testing.T) {
	tests := []struct {
		name   string
		emit   func(c *pipdepsprogrock.Console)
		expect string
	}{
		{
			name:   "completed",
			emit:   func(c *pipdepsprogrock.Console) { c.Finished("pip list", false, nil) },
			expect: "✓ pip list\n",
		},
		{
			name:   "cached",
			emit:   func(c *pipdepsprogrock.Console) { c.Finished("load package cache", true, nil) },
			expect: "● load package cache (cached)\n",
		},
		{
			name:   "failed",
			emit:   func(c *pipdepsprogrock.Console) { c.Finished("pip show [1/1]", false, errors.New("boom")) },
			expect: "✗ pip show [1/1]\n",
		},
		{
			name: "info log",
			emit: func(c *pipdepsprogrock.Console) {
				c.Line("pip list", progrock.LogStream_STDOUT, "[info] 3 packages installed")
			},
			expect: "  pip list: 3 packages installed\n",
		},
		{
			name: "warn log",
			emit: func(c *pipdepsprogrock.Console) {
				c.Line("pip list", progrock.LogStream_STDERR, "[warn] slow")
			},
			expect: "  ! pip list: slow\n",
		},
		{
			name: "error log",
			emit: func(c *pipdepsprogrock.Console) {
				c.Line("pip list", progrock.LogStream_STDERR, "[error] broken")
			},
			expect: "  ✗ pip list: broken\n",
		},
		{
			name: "raw stderr",
			emit: func(c *pipdepsprogrock.Console) {
				c.Line("pip show [1/1]", progrock.LogStream_STDERR, "WARNING: Package(s) not found: nope")
			},
			expect: "  pip show [1/1]: WARNING: Package(s) not found: nope\n",
		},
		{
			name: "debug and raw stdout hidden",
			emit: func(c *pipdepsprogrock.Console) {
				c.Line("pip show [1/1]", progrock.LogStream_STDOUT, "[debug] flask")
				c.Line("pip show [1/1]", progrock.LogStream_STDOUT, "Name: flask")
			},
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(pipdepsprogrock.NewConsole(&buf))
			assert.Equal(t, tt.expect, buf.String())
		})
	}
}

func TestLogSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		log.EXPECT().Info("pip list: 3 packages installed"),
		log.EXPECT().Warn("pip show [1/1]: WARNING: Package(s) not found: nope"),
		log.EXPECT().Warn("pip list: slow"),
		log.EXPECT().Warn("pip list: broken"),
	)

	sink := pipdepsprogrock.NewLogSink(log)
	sink.Line("pip list", progrock.LogStream_STDOUT, "[info] 3 packages installed")
	sink.Line("pip show [1/1]", progrock.LogStream_STDERR, "WARNING: Package(s) not found: nope")
	sink.Line("pip show [1/1]", progrock.LogStream_STDOUT, "Name: flask")
	sink.Line("pip show [1/1]", progrock.LogStream_STDOUT, "[debug] flask")
	sink.Line("pip list", progrock.LogStream_STDERR, "[warn] slow")
	sink.Line("pip list", progrock.LogStream_STDERR, "[error] broken")
	sink.Finished("pip list", false, errors.New("ignored"))
}
