// Package colors picks category colors that stay visually apart from the ones
// already in use.
package colors

import (
	"math"
	"math/rand/v2"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

// Candidates is how many random colors Generate scores before keeping the best.
const Candidates = 50

// Sampling ranges, in degrees and percent.
const (
	minSaturation = 40.0
	maxSaturation = 80.0
	minLightness  = 30.0
	maxLightness  = 70.0
)

var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Source is the randomness Generate draws from; *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Default draws from the goroutine-safe top-level math/rand/v2 generator.
var Default Source = globalSource{}

// HSL is a color with hue in [0, 360) and saturation and lightness in [0, 100].
type HSL struct {
	H, S, L float64
}

// IsHex reports whether s is exactly a #RRGGBB color.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// FilterValid keeps only the entries that are well-formed #RRGGBB colors.
func FilterValid(colors []string) []string {
	out := make([]string, 0, len(colors))
	for _, c := range colors {
		if IsHex(c) {
			out = append(out, c)
		}
	}
	return out
}

// ToHSL converts a #RRGGBB color.
func ToHSL(hex string) (HSL, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return HSL{}, err
	}
	h, s, l := c.Hsl()
	return HSL{H: h, S: s * 100, L: l * 100}, nil
}

// FromHSL formats an HSL color as lowercase #rrggbb.
func FromHSL(c HSL) string {
	return colorful.Hsl(c.H, c.S/100, c.L/100).Clamped().Hex()
}

// Distance is the euclidean norm of the per-channel differences, with hue taken
// the short way round the wheel and every channel scaled to [0, 1].
func Distance(a, b HSL) float64 {
	dh := math.Abs(a.H - b.H)
	dh = math.Min(dh, 360-dh) / 180
	ds := math.Abs(a.S-b.S) / 100
	dl := math.Abs(a.L-b.L) / 100
	return math.Sqrt(dh*dh + ds*ds + dl*dl)
}

// MinDistance is the worst-case separation between c and the existing colors.
// It is +Inf when existing is empty.
func MinDistance(c HSL, existing []HSL) float64 {
	best := math.Inf(1)
	for _, e := range existing {
		if d := Distance(c, e); d < best {
			best = d
		}
	}
	return best
}

// Sample draws one color uniformly from the allowed hue, saturation and lightness ranges.
func Sample(rnd Source) HSL {
	return HSL{
		H: rnd.Float64() * 360,
		S: minSaturation + rnd.Float64()*(maxSaturation-minSaturation),
		L: minLightness + rnd.Float64()*(maxLightness-minLightness),
	}
}

// Generate returns a new #rrggbb color that keeps the largest minimum distance
// to the existing colors among Candidates random samples. Entries of existing
// that are not #RRGGBB are ignored.
func Generate(existing []string, rnd Source) string {
	if rnd == nil {
		rnd = Default
	}

	used := make([]HSL, 0, len(existing))
	for _, hex := range FilterValid(existing) {
		c, err := ToHSL(hex)
		if err != nil {
			continue
		}
		used = append(used, c)
	}

	if len(used) == 0 {
		return FromHSL(Sample(rnd))
	}

	var best HSL
	bestScore := math.Inf(-1)
	for range Candidates {
		candidate := Sample(rnd)
		if score := MinDistance(candidate, used); score > bestScore {
			best, bestScore = candidate, score
		}
	}
	return FromHSL(best)
}
