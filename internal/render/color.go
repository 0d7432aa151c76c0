package render

import "math"

// correlationColor maps a correlation in [-1,1] onto a fixed hue ramp from
// blue (240 degrees, r = -1) to red (0 degrees, r = +1) at constant
// saturation and lightness.
func correlationColor(v float64) (r, g, b float64) {
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	hue := 240 - 240*(v+1)/2
	return hslToRGB(hue, 0.7, 0.5)
}

// hslToRGB converts hue (degrees), saturation and lightness in [0,1] to RGB
func hslToRGB(h, s, l float64) (float64, float64, float64) {
	h = math.Mod(math.Mod(h, 360)+360, 360)

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return r + m, g + m, b + m
}
