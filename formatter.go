package offerscan

import (
	"fmt"
	"strings"
)

// FormatProducts formats merged products for display.
// Products are listed in their ranked order with confidence, contributing
// strategies, and category when present.
func FormatProducts(products []MergedProduct) string {
	if len(products) == 0 {
		return ""
	}

	parts := make([]string, 0, len(products))
	for _, p := range products {
		var b strings.Builder
		fmt.Fprintf(&b, "- %s (%.0f%%", p.Name, p.Confidence)
		if p.Category != "" {
			b.WriteString(", " + p.Category)
		}
		b.WriteString(")")
		if len(p.Strategies) > 0 {
			names := make([]string, len(p.Strategies))
			for i, s := range p.Strategies {
				names[i] = string(s)
			}
			b.WriteString(" [" + strings.Join(names, ", ") + "]")
		}
		if p.Description != "" {
			b.WriteString("\n  " + p.Description)
		}
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n")
}
