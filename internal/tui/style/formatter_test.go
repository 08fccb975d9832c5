package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force color output for all tests in this file to ensure ANSI escape codes are generated
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestColorBranchName(t *testing.T) {
	t.Run("marks the current branch", func(t *testing.T) {
		out := ColorBranchName("main", true)
		require.Contains(t, out, "main (current)")
		require.Contains(t, out, "\x1b[")
	})

	t.Run("other branches keep their bare name", func(t *testing.T) {
		out := ColorBranchName("feature-x", false)
		require.Contains(t, out, "feature-x")
		require.NotContains(t, out, "(current)")
	})

	t.Run("current and other branches use different colors", func(t *testing.T) {
		current := ColorBranchName("main", true)
		other := ColorBranchName("main", false)
		require.NotEqual(t, current, other)
	})
}

func TestColors(t *testing.T) {
	colors := map[string]func(string) string{
		"dim":    ColorDim,
		"red":    ColorRed,
		"green":  ColorGreen,
		"yellow": ColorYellow,
		"cyan":   ColorCyan,
	}

	for name, color := range colors {
		t.Run(name+" wraps text in escape codes", func(t *testing.T) {
			out := color("text")
			require.Contains(t, out, "text")
			require.Contains(t, out, "\x1b[")
		})
	}
}
