// Package display implements the 64x32 monochrome CHIP-8 frame buffer.
package display

import "strings"

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Frame is a copy of the pixel grid, row-major.
type Frame [Width * Height]bool

// Pixel returns whether the pixel at x, y is set. Coordinates outside of the
// screen are reported as unset.
func (f *Frame) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f[y*Width+x]
}

// String renders the frame as text, one line per row, '#' for set pixels.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := range Height {
		for x := range Width {
			if f[y*Width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Display is the frame buffer mutated by the clear and draw instructions.
type Display struct {
	pixels Frame
	wrap   bool
	dirty  bool
}

// New returns a cleared display. If wrap is set, sprite pixels crossing the
// screen edge continue on the opposite side, otherwise they are clipped.
func New(wrap bool) *Display {
	return &Display{
		wrap: wrap,
	}
}

// Clear unsets all pixels.
func (d *Display) Clear() {
	clear(d.pixels[:])
	d.dirty = true
}

// Draw XORs the sprite rows onto the display with the top left corner at x, y.
// Each sprite byte is one row of 8 pixels, most significant bit leftmost.
// The start position always wraps around the screen size. It returns true if
// any pixel was changed from set to unset.
func (d *Display) Draw(x, y byte, sprite []byte) bool {
	originX := int(x) % Width
	originY := int(y) % Height
	collision := false

	for row, bits := range sprite {
		py := originY + row
		if py >= Height {
			if !d.wrap {
				break
			}
			py %= Height
		}

		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}

			px := originX + col
			if px >= Width {
				if !d.wrap {
					break
				}
				px %= Width
			}

			index := py*Width + px
			if d.pixels[index] {
				collision = true
			}
			d.pixels[index] = !d.pixels[index]
		}
	}

	d.dirty = true
	return collision
}

// Pixel returns whether the pixel at x, y is set.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels.Pixel(x, y)
}

// Snapshot returns a copy of the current pixels that can be handed to another
// goroutine for rendering.
func (d *Display) Snapshot() Frame {
	return d.pixels
}

// Dirty reports whether the display changed since the last call to Dirty and
// resets the flag.
func (d *Display) Dirty() bool {
	dirty := d.dirty
	d.dirty = false
	return dirty
}
