package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_NamedKeys(t *testing.T) {
	chord, err := Parse("Enter")
	require.NoError(t, err)
	require.Equal(t, KeyChord{Key: "Enter"}, chord)

	chord, err = Parse("spc")
	require.NoError(t, err)
	require.Equal(t, "Space", chord.Key)

	chord, err = Parse("f5")
	require.NoError(t, err)
	require.Equal(t, "F5", chord.Key)
}

func TestParse_Modifiers(t *testing.T) {
	chord, err := Parse("C-x")
	require.NoError(t, err)
	require.True(t, chord.Ctrl)
	require.Equal(t, "x", chord.Key)

	chord, err = Parse("M-S-Enter")
	require.NoError(t, err)
	require.True(t, chord.Alt)
	require.True(t, chord.Shift)
	require.Equal(t, "Enter", chord.Key)
}

func TestParse_BareHyphen(t *testing.T) {
	chord, err := Parse("-")
	require.NoError(t, err)
	require.Equal(t, "-", chord.Key)

	chord, err = Parse("C--")
	require.NoError(t, err)
	require.True(t, chord.Ctrl)
	require.Equal(t, "-", chord.Key)
}

func TestParse_CaseSensitivity(t *testing.T) {
	lower, err := Parse("g")
	require.NoError(t, err)
	upper, err := Parse("G")
	require.NoError(t, err)
	require.NotEqual(t, lower.Key, upper.Key)
}

func TestKeyNotationRoundTrip(t *testing.T) {
	cases := []string{"a", "G", "Enter", "C-x", "M-S-Tab", "F1", "-", "C--", "Space"}
	for _, raw := range cases {
		chord, err := Parse(raw)
		require.NoError(t, err, raw)
		again, err := Parse(Serialize(chord))
		require.NoError(t, err, raw)
		require.Equal(t, chord, again, "round-trip mismatch for %q", raw)
	}
}
