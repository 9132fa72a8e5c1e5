package progrock

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
	"go.trai.ch/pipdeps/internal/ui/style"
)

// Sink receives what a Display extracts from the recording: finished vertices and complete
// lines of vertex output.
type Sink interface {
	Finished(name string, cached bool, err error)
	Line(name string, stream progrock.LogStream, line string)
}

var _ progrock.Writer = (*Display)(nil)

// Display is a progrock.Writer that reassembles vertex output into lines and reports each
// vertex once, when it completes.
type Display struct {
	sink Sink

	mu       sync.Mutex
	names    map[string]string
	finished map[string]bool
	partial  map[logKey]*bytes.Buffer
	order    []logKey
}

type logKey struct {
	vertex string
	stream progrock.LogStream
}

// NewDisplay creates a Display forwarding to sink.
func NewDisplay(sink Sink) *Display {
	return &Display{
		sink:     sink,
		names:    make(map[string]string),
		finished: make(map[string]bool),
		partial:  make(map[logKey]*bytes.Buffer),
	}
}

// WriteStatus consumes one status update.
func (d *Display) WriteStatus(update *progrock.StatusUpdate) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, v := range update.Vertexes {
		d.names[v.Id] = v.Name
	}

	for _, l := range update.Logs {
		d.appendLog(logKey{vertex: l.Vertex, stream: l.Stream}, l.Data)
	}

	for _, v := range update.Vertexes {
		if v.Completed == nil || d.finished[v.Id] {
			continue
		}
		d.finished[v.Id] = true
		d.flushVertex(v.Id)

		var err error
		if v.Error != nil {
			err = fmt.Errorf("%s", *v.Error)
		}
		d.sink.Finished(v.Name, v.Cached, err)
	}
	return nil
}

// Close emits output still waiting for a newline.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, key := range d.order {
		d.flush(key)
	}
	return nil
}

func (d *Display) appendLog(key logKey, data []byte) {
	buf, ok := d.partial[key]
	if !ok {
		buf = &bytes.Buffer{}
		d.partial[key] = buf
		d.order = append(d.order, key)
	}
	buf.Write(data)

	for {
		i := bytes.IndexByte(buf.Bytes(), '\n')
		if i < 0 {
			return
		}
		line := buf.Next(i + 1)[:i]
		d.sink.Line(d.names[key.vertex], key.stream, string(bytes.TrimSuffix(line, []byte("\r"))))
	}
}

func (d *Display) flushVertex(id string) {
	for _, key := range d.order {
		if key.vertex == id {
			d.flush(key)
		}
	}
}

func (d *Display) flush(key logKey) {
	buf := d.partial[key]
	if buf == nil || buf.Len() == 0 {
		return
	}
	d.sink.Line(d.names[key.vertex], key.stream, buf.String())
	buf.Reset()
}

// Console is a Sink writing one styled line per event for a person at a terminal.
// Debug lines and raw standard output are left out.
type Console struct {
	w      io.Writer
	done   lipgloss.Style
	failed lipgloss.Style
	note   lipgloss.Style
	warn   lipgloss.Style
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:      w,
		done:   style.Success(r),
		failed: r.NewStyle().Foreground(style.Red),
		note:   style.Label(r),
		warn:   r.NewStyle().Foreground(style.Yellow),
	}
}

// Finished prints the outcome of a vertex.
func (c *Console) Finished(name string, cached bool, err error) {
	switch {
	case err != nil:
		_, _ = fmt.Fprintln(c.w, c.failed.Render(style.Cross+" "+name))
	case cached:
		_, _ = fmt.Fprintln(c.w, c.note.Render(style.Dot+" "+name+" (cached)"))
	default:
		_, _ = fmt.Fprintln(c.w, c.done.Render(style.Check+" "+name))
	}
}

// Line prints a line of vertex output below the vertex name.
func (c *Console) Line(name string, stream progrock.LogStream, line string) {
	level, msg, tagged := domain.ParseLogLine(line)
	switch {
	case !tagged && stream != progrock.LogStream_STDERR:
		return
	case !tagged:
		_, _ = fmt.Fprintln(c.w, c.note.Render("  "+name+": "+msg))
	case level >= domain.LogLevelError:
		_, _ = fmt.Fprintln(c.w, c.failed.Render("  "+style.Cross+" "+name+": "+msg))
	case level >= domain.LogLevelWarn:
		_, _ = fmt.Fprintln(c.w, c.warn.Render("  "+style.Warning+" "+name+": "+msg))
	case level >= domain.LogLevelInfo:
		_, _ = fmt.Fprintln(c.w, c.note.Render("  "+name+": "+msg))
	}
}

// LogSink is a Sink for non-interactive runs. It forwards informational vertex logs and
// anything written to a vertex error stream to a ports.Logger. Outcomes are left to the
// errors the operations return.
type LogSink struct {
	logger ports.Logger
}

// NewLogSink creates a LogSink writing to logger.
func NewLogSink(logger ports.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Finished does nothing.
func (s *LogSink) Finished(string, bool, error) {}

// Line forwards a line of vertex output.
func (s *LogSink) Line(name string, stream progrock.LogStream, line string) {
	level, msg, tagged := domain.ParseLogLine(line)
	switch {
	case !tagged && stream != progrock.LogStream_STDERR:
	case !tagged, level >= domain.LogLevelWarn:
		s.logger.Warn(name + ": " + msg)
	case level >= domain.LogLevelInfo:
		s.logger.Info(name + ": " + msg)
	}
}
