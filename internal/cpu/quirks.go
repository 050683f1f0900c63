package cpu

// Quirks selects between historically divergent instruction behaviors.
type Quirks struct {
	// ShiftVY makes 8XY6 and 8XYE shift VY into VX. If unset VX is shifted in place.
	ShiftVY bool
	// JumpVX makes BNNN jump to NNN + VX, X being the highest nibble of NNN, instead of NNN + V0.
	JumpVX bool
	// WrapSprites makes sprites wrap around the screen edges instead of being clipped.
	WrapSprites bool
	// ResetVF clears VF after the 8XY1, 8XY2 and 8XY3 logic instructions.
	ResetVF bool
	// IndexOverflowVF sets VF to 1 if FX1E overflows I beyond 0xFFF and to 0 otherwise.
	IndexOverflowVF bool
	// LoadStoreKeepI leaves I unchanged after FX55 and FX65.
	LoadStoreKeepI bool
}

// DefaultQuirks returns the behavior of the original COSMAC VIP interpreter.
func DefaultQuirks() Quirks {
	return Quirks{
		ShiftVY: true,
	}
}
