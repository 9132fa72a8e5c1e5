package pip

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"

	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/zerr"
)

// recordSeparator divides consecutive records in `pip show` output.
const recordSeparator = "---"

type listEntry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// parseList reads the output of `pip list --format=json`.
func parseList(data []byte) ([]string, error) {
	var entries []listEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, zerr.Wrap(domain.ErrSourceUnavailable, "failed to parse pip list output: "+err.Error())
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	return names, nil
}

// parseShow reads the output of `pip show` into one field map per record.
// Each field line is split at its first colon. Indented continuation lines are ignored.
func parseShow(data []byte) []map[string]string {
	var (
		records []map[string]string
		current map[string]string
	)

	flush := func() {
		if len(current) > 0 {
			records = append(records, current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == recordSeparator {
			flush()
			continue
		}
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if current == nil {
			current = make(map[string]string)
		}
		current[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	flush()

	return records
}
