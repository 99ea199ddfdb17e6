// Package export renders the current garment to an encoded image on demand,
// standing in for the browser-side screenshot of the original configurator.
package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/netisu/aeno"

	"server/internal/garment"
	"server/internal/session"
)

// Fixed camera and lighting; the exported shot always frames the garment
// from the front quarter, matching what the configurator shows by default.
const (
	fovY          = 40.0
	near          = 0.1
	far           = 100.0
	ambientColor  = "#b0b0b0"
	lightColor    = "#909090"
	defaultDim    = 512
	renderScale   = 1
	renderTimeout = 20 * time.Second
)

var (
	eye    = aeno.V(0, 0.4, 4)
	center = aeno.V(0, 0, 0)
	up     = aeno.V(0, 1, 0)
	light  = aeno.V(-0.6, 1, 1).Normalize()
)

type Options struct {
	Dim     int
	Timeout time.Duration
}

// Renderer rasterizes a session's garment headlessly.
type Renderer struct {
	dim     int
	timeout time.Duration
}

func NewRenderer(opts Options) *Renderer {
	dim := opts.Dim
	if dim <= 0 {
		dim = defaultDim
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = renderTimeout
	}
	return &Renderer{dim: dim, timeout: timeout}
}

// Screenshot renders the garment in the given view and returns it PNG
// encoded.
func (r *Renderer) Screenshot(ctx context.Context, view session.RenderView) ([]byte, error) {
	objects, err := buildObjects(view)
	if err != nil {
		return nil, err
	}
	return r.renderWithTimeout(ctx, objects)
}

// buildObjects converts the garment parts into renderable objects. The body
// parts render with the base color; the decal renders only when artwork is
// bound, textured with it.
func buildObjects(view session.RenderView) ([]*aeno.Object, error) {
	var bodyOBJ bytes.Buffer
	err := garment.WriteOBJ(&bodyOBJ, view.Garment, func(p *garment.Part) bool {
		return p.Name != garment.PartDecal
	})
	if err != nil {
		return nil, fmt.Errorf("export: serialize body: %w", err)
	}
	bodyMesh, err := aeno.LoadOBJFromReader(&bodyOBJ)
	if err != nil {
		return nil, fmt.Errorf("export: load body mesh: %w", err)
	}
	objects := []*aeno.Object{{
		Mesh:   bodyMesh,
		Color:  aeno.HexColor(view.BodyColor),
		Matrix: aeno.Identity(),
	}}

	if len(view.Artwork) > 0 {
		var decalOBJ bytes.Buffer
		err := garment.WriteOBJ(&decalOBJ, view.Garment, func(p *garment.Part) bool {
			return p.Name == garment.PartDecal
		})
		if err != nil {
			return nil, fmt.Errorf("export: serialize decal: %w", err)
		}
		decalMesh, err := aeno.LoadOBJFromReader(&decalOBJ)
		if err != nil {
			return nil, fmt.Errorf("export: load decal mesh: %w", err)
		}
		img, err := imaging.Decode(bytes.NewReader(view.Artwork))
		if err != nil {
			return nil, fmt.Errorf("export: decode artwork: %w", err)
		}
		objects = append(objects, &aeno.Object{
			Mesh:    decalMesh,
			Color:   aeno.Transparent,
			Texture: aeno.NewImageTexture(img),
			Matrix:  aeno.Identity(),
		})
	}
	return objects, nil
}

// renderWithTimeout runs the rasterizer off the request goroutine so a
// pathological scene cannot wedge the handler, and converts panics into
// errors.
func (r *Renderer) renderWithTimeout(ctx context.Context, objects []*aeno.Object) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				resChan <- result{nil, fmt.Errorf("export: panic in renderer: %v", rec)}
			}
		}()
		var buf bytes.Buffer
		err := aeno.GenerateSceneToWriter(
			&buf,
			objects,
			eye,
			center,
			up,
			fovY,
			r.dim,
			renderScale,
			light,
			ambientColor,
			lightColor,
			near,
			far,
			true,
		)
		resChan <- result{data: buf.Bytes(), err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("export: render timeout")
	case res := <-resChan:
		return res.data, res.err
	}
}
