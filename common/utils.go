package common

// Coalesce returns the first non-zero value, or the zero value if every value is zero.
//
// Parameters:
//   - values: candidate values in priority order
//
// Returns:
//   - T: the first non-zero value
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// HexToRGB splits a 0xRRGGBB color into normalized red, green, and blue components.
//
// Parameters:
//   - hex: the packed 24-bit color
//
// Returns:
//   - [3]float32: the color with each channel in [0, 1]
func HexToRGB(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xFF) / 255.0,
		float32((hex>>8)&0xFF) / 255.0,
		float32(hex&0xFF) / 255.0,
	}
}
