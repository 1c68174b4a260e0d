// Package procedural synthesizes deterministic placeholder assets from a
// text prompt. It backs the development stand-in for the remote generation
// service: same prompt, style and size always produce identical bytes, so
// everything downstream of a generation can be tested without network
// access or model credentials.
package procedural

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"assetpipe/internal/pipeline"
)

// Render paints a deterministic asset for the prompt and returns it PNG
// encoded at sizePx by sizePx. Color choice comes from color words in the
// prompt plus a hash-derived accent; the style preset shapes saturation,
// contrast and the scaling filter.
func Render(prompt string, style pipeline.Style, sizePx int) ([]byte, error) {
	if sizePx <= 0 {
		return nil, errors.New("procedural: size must be positive")
	}
	preset, ok := stylePresets[style]
	if !ok {
		preset = stylePresets[pipeline.StyleRealistic]
	}

	base := paint(prompt, preset)
	out := scale(base, sizePx, style)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// paint renders the base raster at the preset's working size: a vertical
// gradient between the first two palette colors, horizontal stripes of the
// third, and diagonal accent lines colored from the prompt hash.
func paint(prompt string, preset stylePreset) *image.RGBA {
	size := preset.baseSize
	palette := paletteFromPrompt(prompt)
	top := adjust(palette[0], preset)
	bottom := adjust(palette[1], preset)
	stripe := adjust(palette[2], preset)
	accent := colorFromSeed(promptSeed(prompt), 1)

	img := image.NewRGBA(image.Rect(0, 0, size, size))

	for y := 0; y < size; y++ {
		ratio := float64(y) / float64(size)
		row := blend(top, bottom, ratio)
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, row)
		}
	}

	stripeHeight := max(4, size/12)
	for y := 0; y < size; y += stripeHeight * 2 {
		band := image.Rect(0, y, size, min(size, y+stripeHeight))
		draw.Draw(img, band, &image.Uniform{stripe}, image.Point{}, draw.Over)
	}

	step := max(4, size/32)
	for i := 0; i < size*2; i += step {
		for y := 0; y < size; y++ {
			x := i - y
			if x < 0 || x >= size {
				continue
			}
			img.SetRGBA(x, y, accent)
		}
	}

	return img
}

// scale resizes the base raster to the requested output size. Pixel style
// upscales with nearest-neighbor to keep hard block edges; everything else
// gets a smooth Catmull-Rom resample.
func scale(base *image.RGBA, sizePx int, style pipeline.Style) *image.RGBA {
	if base.Bounds().Dx() == sizePx {
		return base
	}
	out := image.NewRGBA(image.Rect(0, 0, sizePx, sizePx))
	scaler := xdraw.Scaler(xdraw.CatmullRom)
	if style == pipeline.StylePixel {
		scaler = xdraw.NearestNeighbor
	}
	scaler.Scale(out, out.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	return out
}

func blend(a, b color.RGBA, ratio float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x)*(1-ratio) + float64(y)*ratio)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
