package domain

import "strings"

// LogLevel ranks a message recorded against a unit of work. The values line up with log/slog.
type LogLevel int

// Log levels.
const (
	LogLevelDebug LogLevel = -4
	LogLevelInfo  LogLevel = 0
	LogLevelWarn  LogLevel = 4
	LogLevelError LogLevel = 8
)

var logLevelTags = []struct {
	level LogLevel
	tag   string
}{
	{LogLevelDebug, "[debug] "},
	{LogLevelInfo, "[info] "},
	{LogLevelWarn, "[warn] "},
	{LogLevelError, "[error] "},
}

// Tag returns the prefix marking the level on a line of vertex output. Unknown levels tag as info.
func (l LogLevel) Tag() string {
	for _, t := range logLevelTags {
		if t.level == l {
			return t.tag
		}
	}
	return "[info] "
}

// ParseLogLine splits a line of vertex output into its level and message.
// Lines without a tag are raw process output and report ok false.
func ParseLogLine(line string) (level LogLevel, msg string, ok bool) {
	for _, t := range logLevelTags {
		if rest, found := strings.CutPrefix(line, t.tag); found {
			return t.level, rest, true
		}
	}
	return LogLevelInfo, line, false
}
