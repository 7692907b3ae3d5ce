package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirection_Tokens(t *testing.T) {
	want := map[Direction]string{North: "n", East: "e", South: "s", West: "w"}

	for d, token := range want {
		require.Equal(t, token, d.Token())

		parsed, err := ParseDirection(token)
		require.NoError(t, err)
		require.Equal(t, d, parsed)

		parsed, err = ParseDirection(d.String())
		require.NoError(t, err)
		require.Equal(t, d, parsed)
	}
}

func TestDirection_Invalid(t *testing.T) {
	require.False(t, Direction(4).IsValid())
	require.Empty(t, Direction(4).Token())
	require.Equal(t, "Direction(4)", Direction(4).String())

	_, err := ParseDirection("N")
	require.Error(t, err)
}

func TestColor_Tokens(t *testing.T) {
	want := map[Color]string{
		Black: "k", Blue: "b", Gray: "a", Cyan: "c", Green: "g",
		Orange: "o", Red: "r", White: "w", Yellow: "y",
		DarkBlue: "B", DarkCyan: "C", DarkGray: "A", DarkGreen: "G",
		DarkRed: "R", DarkYellow: "Y",
	}

	require.Len(t, Colors(), len(want))

	for c, token := range want {
		require.Equal(t, token, c.Token(), c.String())
	}
}

func TestColor_ParseRoundTrip(t *testing.T) {
	for _, c := range Colors() {
		byName, err := ParseColor(c.String())
		require.NoError(t, err)
		require.Equal(t, c, byName)

		byToken, err := ParseColor(c.Token())
		require.NoError(t, err)
		require.Equal(t, c, byToken)
	}
}

func TestColor_Invalid(t *testing.T) {
	_, err := ParseColor("purple")
	require.Error(t, err)

	require.False(t, Color(15).IsValid())
	require.Equal(t, "Color(15)", Color(15).String())
}
