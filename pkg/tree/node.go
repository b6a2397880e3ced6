// Package tree provides the generic mapping/sequence document tree shared by
// the H2K source schema and the HPXML target schema. Both documents decode to
// the same shape: mappings keyed by element name, sequences for repeated
// elements, strings for leaf text, and attribute keys carrying the
// AttrPrefix marker.
package tree

import (
	"strconv"
	"strings"
)

// AttrPrefix marks attribute keys inside a Node, matching the decoding
// convention of the XML codec.
const AttrPrefix = "-"

// TextKey holds element text when the element also carries attributes.
const TextKey = "#text"

// Node is one mapping in the document tree.
type Node map[string]any

// AsNode reports whether v is mapping-shaped and returns it as a Node.
// Both Node values and raw map[string]any values (as produced by the XML
// codec) are accepted.
func AsNode(v any) (Node, bool) {
	switch t := v.(type) {
	case Node:
		return t, true
	case map[string]any:
		return Node(t), true
	default:
		return nil, false
	}
}

// Lookup walks the path and returns the raw value found there.
func (n Node) Lookup(path ...string) (any, bool) {
	if n == nil {
		return nil, false
	}
	var current any = n
	for _, key := range path {
		node, ok := AsNode(current)
		if !ok {
			return nil, false
		}
		current, ok = node[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Child returns the mapping at path, or nil when the path is absent or not
// mapping-shaped.
func (n Node) Child(path ...string) Node {
	value, ok := n.Lookup(path...)
	if !ok {
		return nil
	}
	child, _ := AsNode(value)
	return child
}

// Ensure walks the path, creating mappings as needed, and returns the Node
// at the end. Non-mapping intermediate values (for example the empty string
// an XML codec produces for a self-closing element) are replaced with a
// fresh mapping.
func (n Node) Ensure(path ...string) Node {
	current := n
	for _, key := range path {
		child, ok := AsNode(current[key])
		if !ok {
			child = Node{}
			current[key] = map[string]any(child)
		}
		current = child
	}
	return current
}

// Text resolves the value at path to its text content. Leaf strings are
// returned verbatim; mappings with attributes yield their TextKey entry.
func (n Node) Text(path ...string) string {
	value, ok := n.Lookup(path...)
	if !ok {
		return ""
	}
	return TextOf(value)
}

// TextOf extracts text content from a raw tree value.
func TextOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case Node:
		return TextOf(t[TextKey])
	case map[string]any:
		return TextOf(t[TextKey])
	default:
		return ""
	}
}

// Attr returns the named attribute's text, or "" when absent.
func (n Node) Attr(name string) string {
	return n.Text(AttrPrefix + name)
}

// SetAttr stores an attribute value on the node.
func (n Node) SetAttr(name, value string) {
	n[AttrPrefix+name] = value
}

// Float parses the value at path as a number. Attribute and element values
// are both plain strings after decoding, so this is the single numeric
// conversion point for the whole engine.
func (n Node) Float(path ...string) (float64, bool) {
	text := strings.TrimSpace(n.Text(path...))
	if text == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// FlagSet reports whether the value at path reads as an affirmative flag.
// H2K serializes booleans as "true"/"false"; a handful of legacy documents
// use "1"/"0".
func (n Node) FlagSet(path ...string) bool {
	switch strings.ToLower(strings.TrimSpace(n.Text(path...))) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// Sequence normalizes the raw value at path into an ordered slice of Nodes.
// A single mapping becomes a one-element slice; an existing sequence is
// returned in source order with non-mapping entries skipped; anything else
// yields nil.
func (n Node) Sequence(path ...string) []Node {
	value, ok := n.Lookup(path...)
	if !ok {
		return nil
	}
	return SequenceOf(value)
}

// SequenceOf applies the single-vs-list normalization to a raw tree value.
func SequenceOf(value any) []Node {
	switch t := value.(type) {
	case []any:
		out := make([]Node, 0, len(t))
		for _, entry := range t {
			if node, ok := AsNode(entry); ok {
				out = append(out, node)
			}
		}
		return out
	default:
		if node, ok := AsNode(value); ok {
			return []Node{node}
		}
		return nil
	}
}

// Clone produces a deep copy of the node so callers can mutate the result
// without touching the original tree.
func (n Node) Clone() Node {
	if n == nil {
		return nil
	}
	out := make(Node, len(n))
	for key, value := range n {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Node:
		return map[string]any(t.Clone())
	case map[string]any:
		return map[string]any(Node(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, entry := range t {
			out[i] = cloneValue(entry)
		}
		return out
	default:
		return v
	}
}

// FormatFloat renders a numeric value the way the target schema expects,
// without a trailing exponent or superfluous zeros.
func FormatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
