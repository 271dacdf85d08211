package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// Product is one sellable row of the catalog. Price and SizeInch are 0 when unknown.
type Product struct {
	Name         string            `json:"name"`
	Brand        string            `json:"brand,omitempty"`
	Price        float64           `json:"price,omitempty"`
	SizeInch     float64           `json:"size_inch,omitempty"`
	PanelType    string            `json:"panel_type,omitempty"`
	Resolution   string            `json:"resolution,omitempty"`
	Category     string            `json:"category,omitempty"`
	Availability string            `json:"availability,omitempty"`
	Raw          map[string]string `json:"raw,omitempty"`
}

func (p Product) HasPrice() bool {
	return p.Price > 0
}

func (p Product) HasSize() bool {
	return p.SizeInch > 0
}

var (
	numberPattern    = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
	namePricePattern = regexp.MustCompile(`€\s*(\d+(?:[.,]\d+)*)`)
	nameSizePattern  = regexp.MustCompile(`(?i)(\d{2,3})\s*(?:inch|"|”|'')`)
	modelSizePattern = regexp.MustCompile(`^(?:[A-Za-z]{1,4}-?)?(\d{2,3})[A-Za-z]`)
)

// ParsePrice understands "€ 1.299,00", "1299.99", "1,299.00" and "1299".
// It returns 0 when no number is found.
func ParsePrice(s string) float64 {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0
	}
	return parseDecimal(m)
}

func parseDecimal(m string) float64 {
	lastDot := strings.LastIndex(m, ".")
	lastComma := strings.LastIndex(m, ",")

	var normalized string
	switch {
	case lastDot >= 0 && lastComma >= 0:
		// whichever separator comes last is the decimal one
		if lastComma > lastDot {
			normalized = strings.ReplaceAll(m, ".", "")
			normalized = strings.Replace(normalized, ",", ".", 1)
		} else {
			normalized = strings.ReplaceAll(m, ",", "")
		}
	case lastComma >= 0:
		normalized = separatorOnly(m, ",")
	case lastDot >= 0:
		normalized = separatorOnly(m, ".")
	default:
		normalized = m
	}

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0
	}
	return v
}

// A lone separator followed by exactly three digits groups thousands, otherwise it is decimal.
func separatorOnly(m, sep string) string {
	parts := strings.Split(m, sep)
	if len(parts) > 2 || len(parts[len(parts)-1]) == 3 {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, ".")
}

// ParseSize takes the first number of the cell as inches.
func ParseSize(s string) float64 {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0
	}
	return parseDecimal(m)
}

func priceFromName(name string) float64 {
	if m := namePricePattern.FindStringSubmatch(name); m != nil {
		return parseDecimal(m[1])
	}
	return 0
}

func sizeFromName(name string) float64 {
	if m := nameSizePattern.FindStringSubmatch(name); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v
	}
	// model numbers such as "55C8" or "QE65Q80C"
	for _, field := range strings.Fields(name) {
		if strings.HasSuffix(strings.ToLower(field), "hz") {
			continue
		}
		if m := modelSizePattern.FindStringSubmatch(field); m != nil {
			v, _ := strconv.ParseFloat(m[1], 64)
			if v >= 19 && v <= 120 {
				return v
			}
		}
	}
	return 0
}

func brandFromName(name string) string {
	if brands := DetectBrands(name); len(brands) > 0 {
		return brands[0]
	}
	return ""
}
