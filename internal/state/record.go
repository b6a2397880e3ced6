package state

import "fmt"

// Record is one stored warning or error entry. Every entry carries at least
// a message; stages may attach extra context fields.
type Record struct {
	Message string
	Fields  map[string]any
}

// normalizeRecord accepts the two shapes stages hand in, a bare string or a
// pre-built Record, and returns a Record with a populated message.
func normalizeRecord(v any) Record {
	switch t := v.(type) {
	case Record:
		if t.Message == "" {
			t.Message = "(no message)"
		}
		return t
	case string:
		return Record{Message: t}
	case fmt.Stringer:
		return Record{Message: t.String()}
	default:
		return Record{Message: fmt.Sprint(t)}
	}
}
