package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"tv-keuzehulp-be/pkg/catalog"
)

const (
	leadLine       = "Op basis van je wensen raad ik deze televisies aan:"
	relaxedNote    = "Niet alles paste precies, dus ik heb je wensen iets ruimer genomen."
	fallbackNote   = "Ik vond geen exacte match, maar deze toestellen zijn een goed startpunt:"
	noProductsLine = "Er zijn op dit moment geen producten beschikbaar om aan te raden."
)

// Render formats a result as markdown-like bullet lines
func Render(result Result) string {
	if len(result.Products) == 0 {
		return noProductsLine
	}

	var b strings.Builder
	switch {
	case result.Fallback:
		b.WriteString(fallbackNote)
	case len(result.Relaxations) > 0:
		b.WriteString(leadLine)
		b.WriteString("\n")
		b.WriteString(relaxedNote)
	default:
		b.WriteString(leadLine)
	}

	for _, p := range result.Products {
		b.WriteString("\n")
		b.WriteString(Bullet(p))
	}
	return b.String()
}

// Bullet renders one product as a markdown list item with its details and price
func Bullet(p catalog.Product) string {
	var details []string
	if p.Brand != "" {
		details = append(details, p.Brand)
	}
	if p.HasSize() {
		details = append(details, formatNumber(p.SizeInch)+`"`)
	}
	if p.PanelType != "" {
		details = append(details, p.PanelType)
	}

	line := "- **" + p.Name + "**"
	if len(details) > 0 {
		line += " (" + strings.Join(details, ", ") + ")"
	}
	if p.HasPrice() {
		line += " — " + FormatPrice(p.Price)
	}
	return line
}

// FormatPrice writes euros the Dutch way: €1.299 or €499,95
func FormatPrice(price float64) string {
	whole := int64(price)
	cents := int64((price-float64(whole))*100 + 0.5)
	if cents == 100 {
		whole++
		cents = 0
	}

	s := groupThousands(strconv.FormatInt(whole, 10))
	if cents > 0 {
		s += fmt.Sprintf(",%02d", cents)
	}
	return "€" + s
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, ".")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
