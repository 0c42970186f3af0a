package keys

import (
	"testing"

	"github.com/killallgit/podcast-tui/internal/ui/actions"
	"github.com/stretchr/testify/require"
)

func TestResolver_KnownBindings(t *testing.T) {
	r := NewResolver()

	down, err := Parse("j")
	require.NoError(t, err)
	require.Equal(t, actions.MoveDown{}, r.Resolve(down))

	ctrlN, err := Parse("C-n")
	require.NoError(t, err)
	require.Equal(t, actions.MoveDown{}, r.Resolve(ctrlN))
}

func TestResolver_UnknownChordResolvesToNone(t *testing.T) {
	r := NewResolver()
	chord, err := Parse("Z")
	require.NoError(t, err)
	require.Equal(t, actions.None{}, r.Resolve(chord))
}

func TestResolver_BindOverridesDefault(t *testing.T) {
	r := NewResolver()
	chord, err := Parse("j")
	require.NoError(t, err)
	r.Bind(chord, actions.Quit{})
	require.Equal(t, actions.Quit{}, r.Resolve(chord))
}
