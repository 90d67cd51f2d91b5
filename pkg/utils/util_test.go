package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedUtils(t *testing.T) {
	t.Run("DereferenceSeed: nil の場合は 0 を返すのだ", func(t *testing.T) {
		assert.Equal(t, int64(0), DereferenceSeed(nil))
	})

	t.Run("DereferenceSeed: 値がある場合はその値を返すのだ", func(t *testing.T) {
		var val int64 = 999
		assert.Equal(t, int64(999), DereferenceSeed(&val))
	})

	t.Run("SeedToPtrInt32", func(t *testing.T) {
		assert.Nil(t, SeedToPtrInt32(nil))
		var val int64 = 42
		got := SeedToPtrInt32(&val)
		if assert.NotNil(t, got) {
			assert.Equal(t, int32(42), *got)
		}
	})
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", TruncateRunes("abcdef", 3))
	assert.Equal(t, "ab", TruncateRunes("ab", 20))
	assert.Equal(t, "ずんだ", TruncateRunes("ずんだもん", 3))
	assert.Equal(t, "", TruncateRunes("abc", 0))
}
