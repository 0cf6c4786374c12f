package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildError_Error_IncludesCategoryAndCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(cause, CategoryOutput, "write failed")

	require.Contains(t, err.Error(), "output")
	require.Contains(t, err.Error(), "write failed")
	require.Contains(t, err.Error(), "boom")
	require.True(t, stderrors.Is(err, cause))
}

func TestIsCategory_MatchesThroughWrapping(t *testing.T) {
	err := ConfigNotFound("missing.yaml")
	wrapped := fmt.Errorf("load: %w", err)

	require.True(t, IsCategory(wrapped, CategoryConfig))
	require.False(t, IsCategory(wrapped, CategoryRender))
	require.Equal(t, CategoryConfig, GetCategory(wrapped))
}

func TestGetCategory_PlainErrorDefaultsToInternal(t *testing.T) {
	require.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
}

func TestCyclicReference_NamesFullChain(t *testing.T) {
	err := CyclicReference([]string{"colors.a", "colors.b", "colors.a"})

	require.Contains(t, err.Error(), "colors.a -> colors.b -> colors.a")
	require.True(t, IsCategory(err, CategoryResolve))
}

func TestUnresolvedReference_NamesPlaceholderAndKey(t *testing.T) {
	err := UnresolvedReference("{colors.missing}", "styles._links.color")

	require.Contains(t, err.Error(), "{colors.missing}")
	require.Contains(t, err.Error(), "styles._links.color")
	require.Equal(t, "{colors.missing}", err.Context["placeholder"])
}
