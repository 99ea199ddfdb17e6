package export

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"server/internal/domain"
	"server/internal/session"
	"server/pkg/zip"
)

// Filename derives the screenshot download filename from the theme.
func Filename(theme domain.Theme) string {
	slug := strings.ToLower(strings.TrimSpace(string(theme)))
	if slug == "" {
		slug = string(domain.ThemeAbstract)
	}
	return fmt.Sprintf("%s-tee.png", slug)
}

// Bundle renders the screenshot and packs it together with the source
// artwork (when present) into one zip download.
func (r *Renderer) Bundle(ctx context.Context, view session.RenderView, artworkMIME string) ([]byte, string, error) {
	shot, err := r.Screenshot(ctx, view)
	if err != nil {
		return nil, "", err
	}
	assets := []zip.Asset{{
		Filename: Filename(view.Theme),
		MIME:     "image/png",
		Data:     shot,
	}}
	if len(view.Artwork) > 0 {
		assets = append(assets, zip.Asset{
			Filename: "artwork" + extensionFor(artworkMIME),
			MIME:     artworkMIME,
			Data:     view.Artwork,
		})
	}
	name := strings.TrimSuffix(Filename(view.Theme), ".png") + ".zip"
	return zip.ArchiveAssets(assets), name, nil
}

func extensionFor(mimeType string) string {
	exts, err := mime.ExtensionsByType(mimeType)
	if err != nil || len(exts) == 0 {
		return ".png"
	}
	return exts[0]
}
