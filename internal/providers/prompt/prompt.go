package prompt

import (
	"context"

	"server/internal/domain"
)

// Describer produces a short free-text design description for a theme.
type Describer interface {
	Describe(ctx context.Context, theme domain.Theme) (string, error)
}

// Enhancer revises a free-text prompt in the context of a theme. Callers
// fall back to the original text when enhancement fails.
type Enhancer interface {
	Enhance(ctx context.Context, promptText string, theme domain.Theme) (string, error)
}
