package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			SetLevel(tt.in)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestHashIDs(t *testing.T) {
	t.Run("stable and short", func(t *testing.T) {
		first := HashPlatformID(123456789)
		assert.Equal(t, first, HashPlatformID(123456789))
		assert.Len(t, first, 8)
		assert.NotContains(t, first, "123456789")
	})

	t.Run("distinct accounts get distinct hashes", func(t *testing.T) {
		assert.Equal(t, HashAccountID("acct-1"), HashAccountID("acct-1"))
		assert.NotEqual(t, HashAccountID("acct-1"), HashAccountID("acct-2"))
		assert.Len(t, HashAccountID("acct-1"), 8)
	})
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeText(""))
	assert.Equal(t, "<redacted: 3 words, 14 chars>", SanitizeText("spent 50k cafe"))
}
