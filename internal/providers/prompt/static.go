package prompt

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"server/internal/domain"
)

// themeCopy holds canned description fragments per theme, used when no AI
// provider is configured or as a fallback on provider failure.
var themeCopy = map[domain.Theme]string{
	domain.ThemeAbstract:   "flowing geometric shapes in bold complementary colors",
	domain.ThemeNature:     "a misty forest scene with layered mountain silhouettes",
	domain.ThemeSpace:      "a vivid nebula with scattered stars and a ringed planet",
	domain.ThemeRetro:      "a sunset grid in synthwave colors with chrome lettering",
	domain.ThemeTypography: "a bold stacked slogan in contrasting display type",
	domain.ThemeAnimals:    "a low-poly fox portrait with sharp triangular facets",
}

// StaticDescriber serves deterministic descriptions without a network call.
type StaticDescriber struct{}

func NewStaticDescriber() *StaticDescriber {
	return &StaticDescriber{}
}

func (s *StaticDescriber) Describe(ctx context.Context, theme domain.Theme) (string, error) {
	copyText, ok := themeCopy[theme]
	if !ok {
		copyText = themeCopy[domain.ThemeAbstract]
	}
	c := cases.Title(language.Und)
	return fmt.Sprintf("%s: %s", c.String(string(theme)), copyText), nil
}

var _ Describer = (*StaticDescriber)(nil)
