// Package palette picks bright colors whose hues are spread around the
// color wheel.
package palette

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// MaxAttempts bounds the search for a hue far enough from the used ones.
	MaxAttempts = 50
	// MinHueDistance is the separation in degrees between picked hues.
	MinHueDistance = 30

	minSaturation, maxSaturation = 75, 100
	minLightness, maxLightness   = 60, 85
)

// Rand is the source of randomness. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// HueDistance is the distance in degrees between two hues on the wheel.
func HueDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

func farFromAll(h int, used []int) bool {
	for _, e := range used {
		if HueDistance(h, e) < MinHueDistance {
			return false
		}
	}
	return true
}

// Next draws a bright color whose hue is at least MinHueDistance from every
// hue in used, giving up after MaxAttempts and keeping the last hue drawn.
// It returns the color as #RRGGBB, used with the new hue appended, and
// whether the hue is distinct.
func Next(rng Rand, used []int) (hex string, hues []int, distinct bool) {
	var h int
	for attempt := 0; attempt < MaxAttempts && !distinct; attempt++ {
		h = rng.IntN(360)
		distinct = farFromAll(h, used)
	}
	hues = append(used, h)

	s := minSaturation + rng.IntN(maxSaturation-minSaturation+1)
	l := minLightness + rng.IntN(maxLightness-minLightness+1)

	return HSLToHex(float64(h), float64(s), float64(l)), hues, distinct
}

// HSLToHex converts hue in degrees and saturation and lightness in percent
// to an upper-case #RRGGBB string.
func HSLToHex(h, s, l float64) string {
	l /= 100
	a := s * math.Min(l, 1-l) / 100

	channel := func(n float64) float64 {
		k := math.Mod(n+h/30, 12)
		return l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
	}

	c := colorful.Color{R: channel(0), G: channel(8), B: channel(4)}
	return strings.ToUpper(c.Clamped().Hex())
}
