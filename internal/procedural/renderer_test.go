package procedural

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"assetpipe/internal/pipeline"
)

func TestRenderProducesPNGAtRequestedSize(t *testing.T) {
	for _, size := range []int{256, 512, 1024} {
		payload, err := Render("stone brick wall texture", pipeline.StyleRealistic, size)
		if err != nil {
			t.Fatalf("render %d: %v", size, err)
		}
		img, err := png.Decode(bytes.NewReader(payload))
		if err != nil {
			t.Fatalf("render %d: output is not a PNG: %v", size, err)
		}
		bounds := img.Bounds()
		if bounds.Dx() != size || bounds.Dy() != size {
			t.Fatalf("render %d: got %dx%d", size, bounds.Dx(), bounds.Dy())
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := Render("cute cartoon mushroom character", pipeline.StyleCartoon, 256)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := Render("cute cartoon mushroom character", pipeline.StyleCartoon, 256)
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("same prompt, style and size produced differing bytes")
	}
}

func TestRenderVariesByPrompt(t *testing.T) {
	a, err := Render("red dragon scales", pipeline.StyleRealistic, 128)
	if err != nil {
		t.Fatalf("render a: %v", err)
	}
	b, err := Render("blue ocean waves", pipeline.StyleRealistic, 128)
	if err != nil {
		t.Fatalf("render b: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("prompts with different color words produced identical output")
	}
}

func TestRenderVariesByStyle(t *testing.T) {
	a, err := Render("treasure chest", pipeline.StyleRealistic, 128)
	if err != nil {
		t.Fatalf("render realistic: %v", err)
	}
	b, err := Render("treasure chest", pipeline.StyleMinimalist, 128)
	if err != nil {
		t.Fatalf("render minimalist: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("different styles produced identical output")
	}
}

func TestRenderUnknownStyleFallsBack(t *testing.T) {
	payload, err := Render("anything", pipeline.Style("vaporwave"), 64)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(payload)); err != nil {
		t.Fatalf("fallback output is not a PNG: %v", err)
	}
}

func TestRenderRejectsNonPositiveSize(t *testing.T) {
	if _, err := Render("anything", pipeline.StyleRealistic, 0); err == nil {
		t.Fatalf("expected error for size 0")
	}
	if _, err := Render("anything", pipeline.StyleRealistic, -64); err == nil {
		t.Fatalf("expected error for negative size")
	}
}

func TestPaletteFromPrompt(t *testing.T) {
	palette := paletteFromPrompt("a RED sword with Blue runes")
	if len(palette) < 3 {
		t.Fatalf("palette len = %d, want >= 3", len(palette))
	}
	if palette[0] != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("palette[0] = %v, want red", palette[0])
	}
	if palette[1] != (color.RGBA{0, 0, 255, 255}) {
		t.Fatalf("palette[1] = %v, want blue", palette[1])
	}

	fallback := paletteFromPrompt("no color words here")
	if len(fallback) != 3 {
		t.Fatalf("fallback palette len = %d, want 3", len(fallback))
	}
	for i, c := range defaultPalette {
		if fallback[i] != c {
			t.Fatalf("fallback[%d] = %v, want %v", i, fallback[i], c)
		}
	}
}

func TestPromptSeedStable(t *testing.T) {
	if promptSeed("sword") != promptSeed("sword") {
		t.Fatalf("seed is not stable for identical prompts")
	}
	if promptSeed("sword") == promptSeed("shield") {
		t.Fatalf("distinct prompts produced the same seed")
	}
	if len(promptSeed("sword")) != 16 {
		t.Fatalf("seed len = %d, want 16", len(promptSeed("sword")))
	}
}

func TestColorFromSeedShift(t *testing.T) {
	seed := promptSeed("sword")
	if colorFromSeed(seed, 0) == colorFromSeed(seed, 1) {
		t.Fatalf("shifted accents from one seed should differ")
	}
}
