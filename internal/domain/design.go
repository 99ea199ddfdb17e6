package domain

import "strings"

// Theme enumerates the design theme categories offered by the configurator.
type Theme string

const (
	ThemeAbstract   Theme = "abstract"
	ThemeNature     Theme = "nature"
	ThemeSpace      Theme = "space"
	ThemeRetro      Theme = "retro"
	ThemeTypography Theme = "typography"
	ThemeAnimals    Theme = "animals"
)

// SleeveLength enumerates the supported sleeve configurations.
type SleeveLength string

const (
	SleeveNone  SleeveLength = "none"
	SleeveShort SleeveLength = "short"
	SleeveLong  SleeveLength = "long"
)

// Fabric enumerates the fabric categories that drive material parameters.
type Fabric string

const (
	FabricCotton          Fabric = "cotton"
	FabricPerformancePoly Fabric = "performance-poly"
	FabricSilkBlend       Fabric = "silk-blend"
)

// Size enumerates garment sizes. Sizing has no geometric effect; it is an
// order attribute carried through to export metadata.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// DesignConfiguration is the flat record of user choices for one session.
// ArtworkRef is empty exactly when no design has been generated or uploaded.
type DesignConfiguration struct {
	Theme               Theme        `json:"theme"`
	PromptText          string       `json:"prompt_text"`
	ArtworkRef          string       `json:"artwork_ref,omitempty"`
	ArtworkUserSupplied bool         `json:"artwork_user_supplied"`
	BaseColor           string       `json:"base_color"`
	Size                Size         `json:"size"`
	SleeveLength        SleeveLength `json:"sleeve_length"`
	Fabric              Fabric       `json:"fabric"`
	Quantity            int          `json:"quantity"`
}

// DefaultDesign returns the fixed session-start configuration.
func DefaultDesign() DesignConfiguration {
	return DesignConfiguration{
		Theme:        ThemeAbstract,
		BaseColor:    "#ffffff",
		Size:         SizeM,
		SleeveLength: SleeveShort,
		Fabric:       FabricCotton,
		Quantity:     1,
	}
}

// Patch is a partial update to a DesignConfiguration. Nil fields leave the
// corresponding value untouched.
type Patch struct {
	Theme               *Theme        `json:"theme,omitempty"`
	PromptText          *string       `json:"prompt_text,omitempty"`
	ArtworkRef          *string       `json:"artwork_ref,omitempty"`
	ArtworkUserSupplied *bool         `json:"artwork_user_supplied,omitempty"`
	BaseColor           *string       `json:"base_color,omitempty"`
	Size                *Size         `json:"size,omitempty"`
	SleeveLength        *SleeveLength `json:"sleeve_length,omitempty"`
	Fabric              *Fabric       `json:"fabric,omitempty"`
	Quantity            *int          `json:"quantity,omitempty"`
}

// Apply merges a patch into a configuration and returns the new value. It is
// a pure function: only the fields set on the patch are overwritten, and the
// quantity never drops below 1.
func Apply(cfg DesignConfiguration, p Patch) DesignConfiguration {
	if p.Theme != nil {
		cfg.Theme = NormalizeTheme(string(*p.Theme))
	}
	if p.PromptText != nil {
		cfg.PromptText = *p.PromptText
	}
	if p.ArtworkRef != nil {
		cfg.ArtworkRef = *p.ArtworkRef
	}
	if p.ArtworkUserSupplied != nil {
		cfg.ArtworkUserSupplied = *p.ArtworkUserSupplied
	}
	if p.BaseColor != nil && *p.BaseColor != "" {
		cfg.BaseColor = *p.BaseColor
	}
	if p.Size != nil {
		cfg.Size = *p.Size
	}
	if p.SleeveLength != nil {
		cfg.SleeveLength = NormalizeSleeve(string(*p.SleeveLength))
	}
	if p.Fabric != nil {
		cfg.Fabric = NormalizeFabric(string(*p.Fabric))
	}
	if p.Quantity != nil {
		cfg.Quantity = *p.Quantity
	}
	if cfg.Quantity < 1 {
		cfg.Quantity = 1
	}
	return cfg
}

// RequiresRebuild reports whether applying the patch forces a mesh rebuild.
// Only sleeve length and fabric changes invalidate geometry; color and
// texture changes mutate materials in place.
func (p Patch) RequiresRebuild(cfg DesignConfiguration) bool {
	if p.SleeveLength != nil && NormalizeSleeve(string(*p.SleeveLength)) != cfg.SleeveLength {
		return true
	}
	if p.Fabric != nil && NormalizeFabric(string(*p.Fabric)) != cfg.Fabric {
		return true
	}
	return false
}

// NormalizeTheme sanitizes free-form input into a supported theme.
func NormalizeTheme(theme string) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(theme))) {
	case ThemeNature:
		return ThemeNature
	case ThemeSpace:
		return ThemeSpace
	case ThemeRetro:
		return ThemeRetro
	case ThemeTypography:
		return ThemeTypography
	case ThemeAnimals:
		return ThemeAnimals
	default:
		return ThemeAbstract
	}
}

// NormalizeSleeve sanitizes free-form input into a supported sleeve length.
func NormalizeSleeve(sleeve string) SleeveLength {
	switch SleeveLength(strings.ToLower(strings.TrimSpace(sleeve))) {
	case SleeveNone:
		return SleeveNone
	case SleeveLong:
		return SleeveLong
	default:
		return SleeveShort
	}
}

// NormalizeFabric sanitizes free-form input into a supported fabric.
func NormalizeFabric(fabric string) Fabric {
	switch Fabric(strings.ToLower(strings.TrimSpace(fabric))) {
	case FabricPerformancePoly:
		return FabricPerformancePoly
	case FabricSilkBlend:
		return FabricSilkBlend
	default:
		return FabricCotton
	}
}
