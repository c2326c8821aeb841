// Package artifact writes generated configuration files, skipping writes
// whose content is structurally equal to what is already on disk so the
// file's mtime only moves when its meaning does.
package artifact

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes structured content. JSON artifacts parse as YAML, so one
// decoder covers both.
func Parse(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Equivalent reports whether a and b are equal ignoring map key order and
// sequence element order at every level.
func Equivalent(a, b any) bool {
	return Canonical(a) == Canonical(b)
}

// EquivalentContent parses both documents and compares them with Equivalent.
func EquivalentContent(a, b []byte) (bool, error) {
	av, err := Parse(a)
	if err != nil {
		return false, err
	}
	bv, err := Parse(b)
	if err != nil {
		return false, err
	}
	return Equivalent(av, bv), nil
}

// Canonical renders v in a normal form: map entries sorted by key, sequence
// elements sorted by their own canonical form. Scalars keep a type marker so
// the string "1" and the number 1 stay distinct.
func Canonical(v any) string {
	var b strings.Builder
	writeCanonical(&b, v)
	return b.String()
}

func writeCanonical(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case map[string]any:
		entries := make([]string, 0, len(t))
		for k, val := range t {
			entries = append(entries, strconv.Quote(k)+":"+Canonical(val))
		}
		writeSorted(b, '{', '}', entries)
	case map[any]any:
		entries := make([]string, 0, len(t))
		for k, val := range t {
			entries = append(entries, Canonical(k)+":"+Canonical(val))
		}
		writeSorted(b, '{', '}', entries)
	case []any:
		elems := make([]string, 0, len(t))
		for _, val := range t {
			elems = append(elems, Canonical(val))
		}
		writeSorted(b, '[', ']', elems)
	case []string:
		elems := make([]string, 0, len(t))
		for _, val := range t {
			elems = append(elems, strconv.Quote(val))
		}
		writeSorted(b, '[', ']', elems)
	case string:
		b.WriteString(strconv.Quote(t))
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case int:
		b.WriteString("#" + strconv.FormatInt(int64(t), 10))
	case int64:
		b.WriteString("#" + strconv.FormatInt(t, 10))
	case uint64:
		b.WriteString("#" + strconv.FormatUint(t, 10))
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			b.WriteString("#" + strconv.FormatInt(int64(t), 10))
		} else {
			b.WriteString("#" + strconv.FormatFloat(t, 'g', -1, 64))
		}
	default:
		fmt.Fprintf(b, "%T(%v)", v, v)
	}
}

func writeSorted(b *strings.Builder, open, close byte, items []string) {
	sort.Strings(items)
	b.WriteByte(open)
	b.WriteString(strings.Join(items, ","))
	b.WriteByte(close)
}
