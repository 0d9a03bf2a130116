package core

import "math"

// MaxChannelValue is the largest quantized channel value
const MaxChannelValue = 255

// RGB is a quantized pixel with channels in [0, MaxChannelValue]
type RGB struct {
	R, G, B int
}

// Clamp quantizes a channel value in [0, 1] to an integer in [0, 255].
// The value is scaled by 255.5 and truncated, so 1.0 maps to 255 and
// out-of-range or NaN inputs are clipped.
func Clamp(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	i := f * 255.5
	if i < 0.0 {
		i = 0.0
	}
	if i > MaxChannelValue {
		i = MaxChannelValue
	}
	return int(i)
}

// QuantizeColor clamps each channel of a color to an RGB pixel
func QuantizeColor(color Vec3) RGB {
	return RGB{
		R: Clamp(color.X),
		G: Clamp(color.Y),
		B: Clamp(color.Z),
	}
}

// Intensity returns the mean channel value normalized to [0, 1]
func (p RGB) Intensity() float64 {
	return float64(p.R+p.G+p.B) / (3.0 * MaxChannelValue)
}
