package carousel

import "math"

// RotationDegrees is the y-axis rotation applied to a page shifted by offset.
func RotationDegrees(offset float64) float64 {
	return offset / -10
}

// Strength maps a page offset to a factor in [0, 1]: 1 when settled,
// falling linearly to 0 one full page width away. Used for opacity and scale.
func Strength(offset, width float64) float64 {
	if width <= 0 {
		return 1
	}
	v := 1 - math.Abs(offset/width)
	return math.Max(0, math.Min(1, v))
}
