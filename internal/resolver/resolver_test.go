package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gigglehq/giggle/internal/config"
	buildererr "github.com/gigglehq/giggle/internal/errors"
)

func lookupString(t *testing.T, tree config.Tree, path string) string {
	t.Helper()
	v, ok := tree.Lookup(path)
	require.True(t, ok, "path %s not found", path)
	s, ok := v.(string)
	require.True(t, ok, "path %s is not a string", path)
	return s
}

func TestResolveTree_NoPlaceholders_IsIdentity(t *testing.T) {
	tree := config.Tree{
		"colors": map[string]any{"primary": "#123456"},
		"count":  3,
		"flag":   true,
	}

	resolved, err := New(tree).ResolveTree()
	require.NoError(t, err)
	require.Equal(t, "#123456", lookupString(t, resolved, "colors.primary"))
	v, _ := resolved.Lookup("count")
	require.Equal(t, 3, v)
	v, _ = resolved.Lookup("flag")
	require.Equal(t, true, v)
}

func TestResolveTree_SingleReference(t *testing.T) {
	tree := config.Tree{
		"colors": map[string]any{"primary": "#123456"},
		"styles": map[string]any{
			"_links": map[string]any{"color": "{colors.primary}"},
		},
	}

	resolved, err := New(tree).ResolveTree()
	require.NoError(t, err)
	require.Equal(t, "#123456", lookupString(t, resolved, "styles._links.color"))
}

func TestResolveTree_ChainedReferences_OrderIndependent(t *testing.T) {
	// c -> b -> a regardless of key order in the source document.
	tree := config.Tree{
		"a": "final",
		"b": "{a}",
		"c": "{b}",
	}

	resolved, err := New(tree).ResolveTree()
	require.NoError(t, err)
	require.Equal(t, "final", lookupString(t, resolved, "b"))
	require.Equal(t, "final", lookupString(t, resolved, "c"))
}

func TestResolveTree_MultiplePlaceholdersInOneScalar(t *testing.T) {
	tree := config.Tree{
		"colors": map[string]any{"fg": "#fff", "bg": "#000"},
		"styles": map[string]any{
			"border": "1px solid {colors.fg} on {colors.bg}",
		},
	}

	resolved, err := New(tree).ResolveTree()
	require.NoError(t, err)
	require.Equal(t, "1px solid #fff on #000", lookupString(t, resolved, "styles.border"))
}

func TestResolveTree_SelfReference_ReportsCycle(t *testing.T) {
	tree := config.Tree{"a": "{a}"}

	_, err := New(tree).ResolveTree()
	require.Error(t, err)
	require.True(t, buildererr.IsCategory(err, buildererr.CategoryResolve))
	require.Contains(t, err.Error(), "cyclic")
	require.Contains(t, err.Error(), "a -> a")
}

func TestResolveTree_LongerCycle_NamesChain(t *testing.T) {
	tree := config.Tree{
		"a": "{b}",
		"b": "{c}",
		"c": "{a}",
	}

	_, err := New(tree).ResolveTree()
	require.Error(t, err)
	require.True(t, buildererr.IsCategory(err, buildererr.CategoryResolve))
	require.Contains(t, err.Error(), "cyclic")
}

func TestResolveTree_UnresolvableReference_NamesPlaceholderAndKey(t *testing.T) {
	tree := config.Tree{
		"styles": map[string]any{
			"_links": map[string]any{"color": "{colors.missing}"},
		},
	}

	_, err := New(tree).ResolveTree()
	require.Error(t, err)
	require.True(t, buildererr.IsCategory(err, buildererr.CategoryResolve))
	require.Contains(t, err.Error(), "{colors.missing}")
	require.Contains(t, err.Error(), "styles._links.color")
}

func TestResolveTree_NonScalarReference_Fails(t *testing.T) {
	tree := config.Tree{
		"colors": map[string]any{"primary": "#123456"},
		"bad":    "{colors}",
	}

	_, err := New(tree).ResolveTree()
	require.Error(t, err)
	require.True(t, buildererr.IsCategory(err, buildererr.CategoryResolve))
}

func TestResolveTree_NumericReference_KeepsPlainForm(t *testing.T) {
	// Unit suffixes are concatenated in the template layer, not here.
	tree := config.Tree{
		"spacing": map[string]any{"padding": 0.5},
		"styles":  map[string]any{"pad": "{spacing.padding}"},
	}

	resolved, err := New(tree).ResolveTree()
	require.NoError(t, err)
	require.Equal(t, "0.5", lookupString(t, resolved, "styles.pad"))
}

func TestResolveTree_DeepChain_Terminates(t *testing.T) {
	tree := config.Tree{"k0": "end"}
	for i := 1; i <= 50; i++ {
		tree["k"+itoa(i)] = "{k" + itoa(i-1) + "}"
	}

	resolved, err := New(tree).ResolveTree()
	require.NoError(t, err)
	require.Equal(t, "end", lookupString(t, resolved, "k50"))
}

func TestResolveValue_Memoization_ReturnsSameResult(t *testing.T) {
	tree := config.Tree{
		"a": "base",
		"b": "{a}",
	}
	r := New(tree)

	first, err := r.ResolveValue("b")
	require.NoError(t, err)
	second, err := r.ResolveValue("b")
	require.NoError(t, err)
	require.Equal(t, "base", first)
	require.Equal(t, first, second)
}

func itoa(i int) string {
	digits := "0123456789"
	if i == 0 {
		return "0"
	}
	var out []byte
	for i > 0 {
		out = append([]byte{digits[i%10]}, out...)
		i /= 10
	}
	return string(out)
}
