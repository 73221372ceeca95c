package domain

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"

	m "covrun.dev/pkg/covrun/internal/model"
)

// maxEventLine bounds a single line of go test -json output. Tests that log
// huge blobs produce long output events.
const maxEventLine = 16 * 1024 * 1024

// DecodeEvents reads a go test -json stream from r and calls fn for every
// event in order. Lines that are not JSON objects are passed on as output
// events so nothing printed by the toolchain is lost.
func DecodeEvents(ctx context.Context, r io.Reader, fn func(m.TestEvent) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventLine)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := fn(parseEventLine(scanner.Bytes())); err != nil {
			return err
		}
	}

	return scanner.Err()
}

func parseEventLine(line []byte) m.TestEvent {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var event m.TestEvent
		if err := json.Unmarshal(trimmed, &event); err == nil && event.Action != "" {
			return event
		}
	}

	return m.TestEvent{
		Action: m.ActionOutput,
		Output: string(line) + "\n",
	}
}
