package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad_PressRelease(t *testing.T) {
	k := New()

	_, ok := k.AnyPressed()
	assert.False(t, ok)

	k.Press(0xB)
	k.Press(0x3)
	assert.True(t, k.IsPressed(0xB))
	assert.True(t, k.IsPressed(0x1B))
	assert.False(t, k.IsPressed(0x0))

	key, ok := k.AnyPressed()
	assert.True(t, ok)
	assert.Equal(t, byte(0x3), key)

	k.Release(0x3)
	key, ok = k.AnyPressed()
	assert.True(t, ok)
	assert.Equal(t, byte(0xB), key)

	k.ReleaseAll()
	_, ok = k.AnyPressed()
	assert.False(t, ok)
}

func TestKeypad_IgnoresInvalidIndex(t *testing.T) {
	k := New()
	k.Press(0x10)
	_, ok := k.AnyPressed()
	assert.False(t, ok)
}

func TestKeyForRune(t *testing.T) {
	tests := []struct {
		r    rune
		key  byte
		isOk bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'q', 0x4, true},
		{'R', 0xD, true},
		{'x', 0x0, true},
		{'v', 0xF, true},
		{'p', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			key, ok := KeyForRune(tt.r)
			assert.Equal(t, tt.isOk, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}
