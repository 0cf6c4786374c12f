// Package resolver substitutes {path.to.key} placeholders embedded in the
// merged configuration tree with their final literal values. Resolution is
// depth-first with memoization; a key being resolved is tracked so any
// re-entry is reported as a cycle instead of recursing forever.
package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gigglehq/giggle/internal/config"
	buildererr "github.com/gigglehq/giggle/internal/errors"
	"github.com/gigglehq/giggle/internal/util/sets"
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z0-9_][A-Za-z0-9_.-]*)\}`)

// Resolver resolves placeholders against one merged context per build.
// It is not safe for concurrent use; each build constructs its own.
type Resolver struct {
	ctx       config.Tree
	memo      map[string]string
	resolving sets.Set[string]
	chain     []string
}

// New creates a Resolver over the merged site+style context.
func New(ctx config.Tree) *Resolver {
	return &Resolver{
		ctx:       ctx,
		memo:      make(map[string]string),
		resolving: sets.New[string](),
	}
}

// ResolveTree returns a copy of the context with every string scalar fully
// resolved. The first resolution failure aborts.
func (r *Resolver) ResolveTree() (config.Tree, error) {
	out := r.ctx.Clone()
	var firstErr error
	out.WalkScalars(func(path string, v any) {
		if firstErr != nil {
			return
		}
		s, ok := v.(string)
		if !ok || !placeholderRe.MatchString(s) {
			return
		}
		resolved, err := r.resolveString(path, s)
		if err != nil {
			firstErr = err
			return
		}
		setPath(out, path, resolved)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// ResolveValue resolves the scalar at the given key path and returns its
// final literal form.
func (r *Resolver) ResolveValue(path string) (string, error) {
	return r.resolveKey(path, path)
}

// resolveKey resolves the value stored at refPath. containingKey is the key
// whose scalar referenced it, used for error context.
func (r *Resolver) resolveKey(refPath, containingKey string) (string, error) {
	if cached, ok := r.memo[refPath]; ok {
		return cached, nil
	}
	if r.resolving.Has(refPath) {
		cycle := append(append([]string{}, r.chain...), refPath)
		return "", buildererr.CyclicReference(cycle)
	}

	raw, ok := r.ctx.Lookup(refPath)
	if !ok {
		return "", buildererr.UnresolvedReference("{"+refPath+"}", containingKey)
	}
	scalar, ok := scalarString(raw)
	if !ok {
		return "", buildererr.UnresolvedReference("{"+refPath+"}", containingKey).
			WithContext("reason", "reference target is not a scalar")
	}

	r.resolving.Add(refPath)
	r.chain = append(r.chain, refPath)
	resolved, err := r.resolveString(refPath, scalar)
	r.chain = r.chain[:len(r.chain)-1]
	r.resolving.Delete(refPath)
	if err != nil {
		return "", err
	}

	r.memo[refPath] = resolved
	return resolved, nil
}

// resolveString substitutes all placeholders inside value. keyPath names the
// key holding value for error reporting.
func (r *Resolver) resolveString(keyPath, value string) (string, error) {
	matches := placeholderRe.FindAllStringSubmatchIndex(value, -1)
	if len(matches) == 0 {
		return value, nil
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(value[last:m[0]])
		refPath := value[m[2]:m[3]]
		resolved, err := r.resolveKey(refPath, keyPath)
		if err != nil {
			return "", err
		}
		sb.WriteString(resolved)
		last = m[1]
	}
	sb.WriteString(value[last:])
	return sb.String(), nil
}

// scalarString renders a scalar reference target as its literal string form.
// Numbers keep their YAML representation; unit suffixes are the template
// layer's concern.
func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return fmt.Sprintf("%t", val), true
	case int, int64, uint64:
		return fmt.Sprintf("%d", val), true
	case float64:
		return trimFloat(val), true
	default:
		return "", false
	}
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

// setPath writes a value at a dotted path inside the tree, descending
// through maps and sequences created by Clone.
func setPath(t config.Tree, path string, value any) {
	var cur any = map[string]any(t)
	segs := strings.Split(path, ".")
	for i, seg := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			seq, sok := cur.([]any)
			if !sok {
				return
			}
			idx := seqIndex(seg)
			if idx < 0 || idx >= len(seq) {
				return
			}
			if i == len(segs)-1 {
				seq[idx] = value
				return
			}
			cur = seq[idx]
			continue
		}
		if i == len(segs)-1 {
			m[seg] = value
			return
		}
		cur = m[seg]
	}
}

func seqIndex(seg string) int {
	n := 0
	for _, c := range seg {
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	return n
}
