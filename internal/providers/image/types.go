package image

import (
	"context"

	"server/internal/domain"
)

// GenerateRequest describes a normalized artwork request passed to any
// image provider.
type GenerateRequest struct {
	Theme                 domain.Theme
	Prompt                string
	BaseColor             string
	TransparentBackground bool
	RequestID             string
}

// Artwork is a generated image ready to bind onto the decal.
type Artwork struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Generator is the contract implemented by all image providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Artwork, error)
}
