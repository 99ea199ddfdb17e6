// Package texture binds 2D artwork onto the garment's print-decal surface.
package texture

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"server/internal/domain"
	"server/internal/garment"
)

// Artwork larger than this is downscaled before binding; the decal never
// benefits from more texels than the render target resolves.
const maxTextureSize = 1024

// Binder applies or clears the decal texture map. Visibility is controlled
// purely through material opacity: the decal part itself always exists.
type Binder struct{}

// Bind decodes the artwork and applies it as the decal material's color map.
// Decode failures are reported as errors and leave the decal cleared, rather
// than silently dropping the operation.
func (Binder) Bind(g *garment.Garment, data []byte) error {
	if len(data) == 0 {
		Binder{}.Clear(g)
		return nil
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		g.Decal.SetMap(nil)
		return fmt.Errorf("%w: %v", domain.ErrDecodeArtwork, err)
	}
	g.Decal.SetMap(normalize(img))
	return nil
}

// Clear removes the map reference and hides the decal.
func (Binder) Clear(g *garment.Garment) {
	g.Decal.SetMap(nil)
}

// normalize converts the decoded image to display-referred NRGBA regardless
// of source encoding and caps its dimensions.
func normalize(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() > maxTextureSize || b.Dy() > maxTextureSize {
		return imaging.Fit(img, maxTextureSize, maxTextureSize, imaging.Lanczos)
	}
	return imaging.Clone(img)
}
