package procedural

import (
	"crypto/sha256"
	"encoding/hex"
	"image/color"
	"strconv"
	"strings"

	"assetpipe/internal/pipeline"
)

// stylePreset tunes how a style reshapes the palette and the raster. Pixel
// style renders at a coarse base size and upscales without smoothing so the
// result actually looks blocky.
type stylePreset struct {
	saturation float64
	contrast   float64
	baseSize   int
}

var stylePresets = map[pipeline.Style]stylePreset{
	pipeline.StyleRealistic:  {saturation: 1.0, contrast: 1.2, baseSize: 512},
	pipeline.StyleCartoon:    {saturation: 1.5, contrast: 0.8, baseSize: 512},
	pipeline.StylePixel:      {saturation: 1.3, contrast: 1.0, baseSize: 64},
	pipeline.StyleMinimalist: {saturation: 0.7, contrast: 1.1, baseSize: 512},
}

// colorKeywords maps prompt words to palette colors. Matching is plain
// substring search over the lower-cased prompt, like the generation service
// it stands in for.
var colorKeywords = []struct {
	word string
	rgba color.RGBA
}{
	{"red", color.RGBA{255, 0, 0, 255}},
	{"blue", color.RGBA{0, 0, 255, 255}},
	{"green", color.RGBA{0, 255, 0, 255}},
	{"yellow", color.RGBA{255, 255, 0, 255}},
	{"purple", color.RGBA{128, 0, 128, 255}},
	{"orange", color.RGBA{255, 165, 0, 255}},
	{"brown", color.RGBA{139, 69, 19, 255}},
	{"black", color.RGBA{0, 0, 0, 255}},
	{"white", color.RGBA{255, 255, 255, 255}},
	{"gray", color.RGBA{128, 128, 128, 255}},
	{"pink", color.RGBA{255, 192, 203, 255}},
}

var defaultPalette = []color.RGBA{
	{100, 150, 200, 255},
	{200, 100, 150, 255},
	{150, 200, 100, 255},
}

// paletteFromPrompt extracts colors named in the prompt, in keyword table
// order, falling back to the default triple when the prompt names none. The
// palette is padded to at least three entries so the painter always has a
// background pair and a stripe color.
func paletteFromPrompt(prompt string) []color.RGBA {
	lowered := strings.ToLower(prompt)
	var palette []color.RGBA
	for _, kw := range colorKeywords {
		if strings.Contains(lowered, kw.word) {
			palette = append(palette, kw.rgba)
		}
	}
	if len(palette) == 0 {
		palette = append(palette, defaultPalette...)
	}
	for i := 0; len(palette) < 3; i++ {
		palette = append(palette, defaultPalette[i%len(defaultPalette)])
	}
	return palette
}

// adjust applies a preset's saturation and contrast to one color channel
// triple around mid-gray.
func adjust(c color.RGBA, preset stylePreset) color.RGBA {
	gray := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	apply := func(v uint8) uint8 {
		f := gray + (float64(v)-gray)*preset.saturation
		f = 128 + (f-128)*preset.contrast
		if f < 0 {
			f = 0
		}
		if f > 255 {
			f = 255
		}
		return uint8(f)
	}
	return color.RGBA{R: apply(c.R), G: apply(c.G), B: apply(c.B), A: 255}
}

// promptSeed condenses the prompt into a short stable hex seed used to vary
// the accent color between otherwise identical palettes.
func promptSeed(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])[:16]
}

// colorFromSeed derives a stable color from a hex seed, shifted so multiple
// accents from one seed differ.
func colorFromSeed(seed string, shift int) color.RGBA {
	if seed == "" {
		seed = "000000"
	}
	doubled := seed + seed
	start := (shift * 6) % len(seed)
	segment := doubled[start : start+6]
	return color.RGBA{
		R: parseHexByte(segment[0:2]),
		G: parseHexByte(segment[2:4]),
		B: parseHexByte(segment[4:6]),
		A: 255,
	}
}

func parseHexByte(s string) uint8 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}
