package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"server/internal/domain"
	"server/internal/garment"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestBindSetsMapAndOpacity(t *testing.T) {
	g := garment.Build(domain.SleeveShort, domain.FabricCotton, "#ffffff")
	var b Binder
	if err := b.Bind(g, pngBytes(t, 8, 8)); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if g.Decal.Map == nil {
		t.Fatal("decal map not set")
	}
	if g.Decal.Opacity != 1 {
		t.Fatalf("decal opacity = %.1f, want 1", g.Decal.Opacity)
	}
}

func TestBindNilClears(t *testing.T) {
	g := garment.Build(domain.SleeveShort, domain.FabricCotton, "#ffffff")
	var b Binder
	if err := b.Bind(g, pngBytes(t, 4, 4)); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := b.Bind(g, nil); err != nil {
		t.Fatalf("Bind(nil): %v", err)
	}
	if g.Decal.Map != nil || g.Decal.Opacity != 0 {
		t.Fatalf("decal not cleared: map=%v opacity=%.1f", g.Decal.Map, g.Decal.Opacity)
	}
}

func TestBindDecodeFailure(t *testing.T) {
	g := garment.Build(domain.SleeveShort, domain.FabricCotton, "#ffffff")
	var b Binder
	err := b.Bind(g, []byte("definitely not an image"))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !errors.Is(err, domain.ErrDecodeArtwork) {
		t.Fatalf("error = %v, want ErrDecodeArtwork", err)
	}
	if g.Decal.Map != nil || g.Decal.Opacity != 0 {
		t.Fatal("decal must stay cleared after a failed decode")
	}
}

func TestBindDownscalesOversizedArtwork(t *testing.T) {
	g := garment.Build(domain.SleeveShort, domain.FabricCotton, "#ffffff")
	var b Binder
	if err := b.Bind(g, pngBytes(t, 2048, 1024)); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	bounds := g.Decal.Map.Bounds()
	if bounds.Dx() > 1024 || bounds.Dy() > 1024 {
		t.Fatalf("artwork not downscaled: %v", bounds)
	}
}

func TestBindSurvivesRebuild(t *testing.T) {
	art := pngBytes(t, 8, 8)
	var b Binder

	g := garment.Build(domain.SleeveShort, domain.FabricCotton, "#ffffff")
	if err := b.Bind(g, art); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	// Sleeve change tears the mesh down; re-binding the kept artwork must
	// restore visibility on the new decal surface.
	rebuilt := garment.Build(domain.SleeveNone, domain.FabricCotton, "#ffffff")
	if err := b.Bind(rebuilt, art); err != nil {
		t.Fatalf("Bind after rebuild: %v", err)
	}
	if rebuilt.Decal.Map == nil || rebuilt.Decal.Opacity != 1 {
		t.Fatal("artwork lost after rebuild")
	}
}
