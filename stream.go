package client

import (
	"bufio"
	"encoding/json"
	"io"
	"reflect"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TextStreamEvent is one event from a text/event-stream response
type TextStreamEvent struct {
	Event string `json:"event,omitempty"`
	Id    string `json:"id,omitempty"`
	Data  string `json:"data"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Streamed responses can carry large chunks on a single line
const maxStreamToken = 1024 * 1024

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Json decodes the event data into v
func (e TextStreamEvent) Json(v any) error {
	return json.Unmarshal([]byte(e.Data), v)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// decodeJsonStream reads newline-delimited JSON from the body. Each line
// is decoded into a fresh value of the same type as out and handed to the
// callback; the final line is also decoded into out, so that a non-streamed
// single-object response populates out as the buffered primitive would.
func decodeJsonStream(body io.Reader, fn JsonStreamCallback, out any) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 4096), maxStreamToken)

	var t reflect.Type
	if out != nil {
		if rt := reflect.TypeOf(out); rt.Kind() == reflect.Ptr {
			t = rt.Elem()
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var chunk any
		if t != nil {
			chunk = reflect.New(t).Interface()
		} else {
			chunk = new(map[string]any)
		}
		if err := json.Unmarshal([]byte(line), chunk); err != nil {
			return err
		}
		if fn != nil {
			if err := fn(chunk); err != nil {
				return err
			}
		}
		if out != nil {
			if err := json.Unmarshal([]byte(line), out); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

// decodeTextStream reads server-sent events from the body, dispatching
// each event to the callback. Multi-line data fields are joined with a
// newline per the event stream convention.
func decodeTextStream(body io.Reader, fn TextStreamCallback) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 4096), maxStreamToken)

	var event TextStreamEvent
	var data []string
	flush := func() error {
		if event.Event == "" && len(data) == 0 {
			return nil
		}
		event.Data = strings.Join(data, "\n")
		err := fn(event)
		event = TextStreamEvent{}
		data = nil
		return err
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if err := flush(); err != nil {
				return err
			}
		case strings.HasPrefix(line, ":"):
			// comment
		case strings.HasPrefix(line, "event:"):
			event.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "id:"):
			event.Id = strings.TrimSpace(strings.TrimPrefix(line, "id:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return flush()
}
