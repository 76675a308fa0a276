package cache

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Snapshot is an ordered sequence of dependency values captured at
// write time. Element order matters: [a, b] and [b, a] are different
// snapshots.
type Snapshot []any

// Equal reports whether two snapshots carry the same values in the
// same order, compared structurally via a canonical JSON form (map
// keys sorted, element order preserved). A value that cannot be
// serialized makes the snapshots compare unequal, which biases toward
// invalidation rather than serving stale data.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}
	a, err := canonicalize([]any(s))
	if err != nil {
		return false
	}
	b, err := canonicalize([]any(other))
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// clone returns a copy of the snapshot's backing slice so later caller
// mutations of the slice don't alias the recorded state. Element values
// themselves are shared.
func (s Snapshot) clone() Snapshot {
	if s == nil {
		return nil
	}
	c := make(Snapshot, len(s))
	copy(c, s)
	return c
}

// canonicalize produces a deterministic JSON representation of the
// value. Maps are sorted by key to ensure consistent ordering.
func canonicalize(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	switch val := v.(type) {
	case map[string]any:
		return canonicalizeMap(val)
	case []any:
		return canonicalizeSlice(val)
	default:
		return json.Marshal(v)
	}
}

func canonicalizeMap(m map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []byte("{")
	for i, k := range keys {
		if i > 0 {
			result = append(result, ',')
		}

		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		result = append(result, keyBytes...)
		result = append(result, ':')

		valBytes, err := canonicalize(m[k])
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, '}')

	return result, nil
}

func canonicalizeSlice(s []any) ([]byte, error) {
	result := []byte("[")
	for i, v := range s {
		if i > 0 {
			result = append(result, ',')
		}

		valBytes, err := canonicalize(v)
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, ']')

	return result, nil
}
