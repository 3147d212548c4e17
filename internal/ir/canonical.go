package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces a deterministic JSON encoding of v, suitable for
// content-addressed hashing of topology descriptors and node debug dumps.
//
// Differences from encoding/json's default output:
//   - object keys are sorted (byte-wise, after NFC normalization)
//   - HTML is never escaped
//   - strings are NFC normalized before encoding
//
// v must be built from nil, bool, string, float64, int, int64, []any and
// map[string]any, i.e. the shapes produced by encoding/json or yaml.v3
// unmarshaling into interface{}.
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case string:
		return writeCanonicalString(buf, val)
	case int:
		fmt.Fprintf(buf, "%d", val)
		return nil
	case int64:
		fmt.Fprintf(buf, "%d", val)
		return nil
	case uint64:
		fmt.Fprintf(buf, "%d", val)
		return nil
	case float64:
		return writeCanonicalFloat(buf, val)
	case []any:
		return writeCanonicalArray(buf, val)
	case map[string]any:
		return writeCanonicalObject(buf, val)
	default:
		return fmt.Errorf("ir: unsupported type for canonical JSON: %T", v)
	}
}

// writeCanonicalFloat rejects non-finite floats and otherwise round-trips
// through encoding/json, which already produces the shortest exact
// representation Go can parse back.
func writeCanonicalFloat(buf *bytes.Buffer, f float64) error {
	enc, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("ir: cannot canonicalize float %v: %w", f, err)
	}
	buf.Write(enc)
	return nil
}

func writeCanonicalString(buf *bytes.Buffer, s string) error {
	normalized := norm.NFC.String(s)

	var enc bytes.Buffer
	e := json.NewEncoder(&enc)
	e.SetEscapeHTML(false)
	if err := e.Encode(normalized); err != nil {
		return fmt.Errorf("ir: cannot canonicalize string: %w", err)
	}

	out := enc.Bytes()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	buf.Write(out)
	return nil
}

func writeCanonicalArray(buf *bytes.Buffer, arr []any) error {
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonical(buf, elem); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeCanonicalObject(buf *bytes.Buffer, obj map[string]any) error {
	type entry struct {
		normalized string
		original   string
	}
	entries := make([]entry, 0, len(obj))
	for k := range obj {
		entries = append(entries, entry{normalized: norm.NFC.String(k), original: k})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].normalized < entries[j].normalized })

	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalString(buf, e.normalized); err != nil {
			return fmt.Errorf("key %q: %w", e.original, err)
		}
		buf.WriteByte(':')
		if err := writeCanonical(buf, obj[e.original]); err != nil {
			return fmt.Errorf("value for key %q: %w", e.original, err)
		}
	}
	buf.WriteByte('}')
	return nil
}
