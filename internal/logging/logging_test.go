package logging

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestTruncateShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello"))
	s := strings.Repeat("a", 500)
	assert.Equal(t, s, Truncate(s))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// 499 ASCII bytes then a 4-byte rune straddling the cut
	s := strings.Repeat("a", 499) + "🚀" + strings.Repeat("b", 20)

	out := Truncate(s)
	require.True(t, utf8.ValidString(out))
	assert.Equal(t, strings.Repeat("a", 499)+"... [truncated]", out)
}

func TestTruncateMultibyteText(t *testing.T) {
	s := strings.Repeat("é", 400)

	out := Truncate(s)
	require.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasSuffix(out, "... [truncated]"))
	assert.Equal(t, 250, utf8.RuneCountInString(strings.TrimSuffix(out, "... [truncated]")))
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	require.NoError(t, Init("loud", "json"))
	assert.False(t, Logger.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, Logger.Desugar().Core().Enabled(zapcore.InfoLevel))
}
