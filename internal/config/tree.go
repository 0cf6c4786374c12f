package config

import "sort"

// Tree is a nested key-value configuration tree as unmarshalled from YAML.
// Values are scalars (string/number/bool), nested Trees (map[string]any), or
// sequences ([]any) of either. Trees are treated as immutable after load;
// operations that change values return copies.
type Tree map[string]any

// Lookup resolves a dotted path ("colors.primary") against the tree and
// returns the value at that path.
func (t Tree) Lookup(path string) (any, bool) {
	var cur any = map[string]any(t)
	start := 0
	for i := 0; i <= len(path); i++ {
		if i != len(path) && path[i] != '.' {
			continue
		}
		key := path[start:i]
		start = i + 1
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Merge deep-merges override into base and returns a new tree. Scalars and
// sequences in override replace base values; nested maps merge recursively.
func Merge(base, override Tree) Tree {
	out := make(Tree, len(base)+len(override))
	for k, v := range base {
		out[k] = deepCopyValue(v)
	}
	for k, v := range override {
		bm, bok := out[k].(map[string]any)
		om, ook := v.(map[string]any)
		if bok && ook {
			out[k] = map[string]any(Merge(Tree(bm), Tree(om)))
			continue
		}
		out[k] = deepCopyValue(v)
	}
	return out
}

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = deepCopyValue(inner)
		}
		return m
	case Tree:
		return map[string]any(val.Clone())
	case []any:
		s := make([]any, len(val))
		for i, inner := range val {
			s[i] = deepCopyValue(inner)
		}
		return s
	default:
		return v
	}
}

// WalkScalars visits every scalar leaf in deterministic (sorted-key) order.
// Sequence elements are visited in list order with their index in the path.
func (t Tree) WalkScalars(fn func(path string, value any)) {
	walkValue("", map[string]any(t), fn)
}

func walkValue(path string, v any, fn func(string, any)) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walkValue(joinPath(path, k), val[k], fn)
		}
	case []any:
		for i, inner := range val {
			walkValue(joinPath(path, itoa(i)), inner, fn)
		}
	default:
		fn(path, v)
	}
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

// itoa avoids strconv for the tiny non-negative indices seen in sequences.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}
