// Package keypad implements the 16 key CHIP-8 hex keypad.
//
// The keypad layout of the original COSMAC VIP:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
package keypad

// Keys is the number of keys on the keypad.
const Keys = 16

// Reader is the read-only view of the keypad that the interpreter polls.
type Reader interface {
	// IsPressed returns whether the key with the given index is held down.
	IsPressed(key byte) bool
	// AnyPressed returns the lowest pressed key index.
	AnyPressed() (byte, bool)
}

// Compile-time check to ensure Keypad implements Reader.
var _ Reader = (*Keypad)(nil)

// Keypad holds the pressed state of all keys. It is mutated by the host only.
type Keypad struct {
	keys [Keys]bool
}

// New returns a keypad with all keys released.
func New() *Keypad {
	return &Keypad{}
}

// Press marks the key as held down. Indexes outside of 0-F are ignored.
func (k *Keypad) Press(key byte) {
	if key < Keys {
		k.keys[key] = true
	}
}

// Release marks the key as released.
func (k *Keypad) Release(key byte) {
	if key < Keys {
		k.keys[key] = false
	}
}

// ReleaseAll releases all keys.
func (k *Keypad) ReleaseAll() {
	clear(k.keys[:])
}

// IsPressed returns whether the key is held down. Only the low nibble of key
// is used, as the interpreter passes full register values.
func (k *Keypad) IsPressed(key byte) bool {
	return k.keys[key&0xF]
}

// AnyPressed returns the lowest pressed key index.
func (k *Keypad) AnyPressed() (byte, bool) {
	for i, pressed := range k.keys {
		if pressed {
			return byte(i), true
		}
	}
	return 0, false
}
