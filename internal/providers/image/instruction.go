package image

import (
	"fmt"
	"strings"
)

// BuildInstruction composes the full generation prompt sent to the image
// provider: the user's prompt first, then theme and garment context, then
// the background directive.
func BuildInstruction(req GenerateRequest) string {
	parts := []string{}
	if prompt := strings.TrimSpace(req.Prompt); prompt != "" {
		parts = append(parts, prompt+".")
	}
	if theme := strings.TrimSpace(string(req.Theme)); theme != "" {
		parts = append(parts, fmt.Sprintf("Style the artwork for a %s themed T-shirt print.", theme))
	}
	if color := strings.TrimSpace(req.BaseColor); color != "" {
		parts = append(parts, fmt.Sprintf("The artwork will be printed on a %s shirt, so choose colors that stay readable against it.", color))
	}
	parts = append(parts, "Square composition, centered subject, no mockup, no shirt, artwork only.")
	if req.TransparentBackground {
		parts = append(parts, "Transparent background.")
	} else {
		parts = append(parts, "Solid background.")
	}
	return strings.Join(parts, " ")
}
