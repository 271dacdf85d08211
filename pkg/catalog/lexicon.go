package catalog

import (
	"regexp"
	"strings"
)

// KnownBrands is the fixed list of television brands recognised in names and utterances
var KnownBrands = []string{
	"Samsung", "LG", "Sony", "Philips", "Panasonic",
	"TCL", "Hisense", "Sharp", "Toshiba", "Grundig",
}

const (
	PanelNeoQLED  = "Neo QLED"
	PanelQLED     = "QLED"
	PanelOLED     = "OLED"
	PanelMiniLED  = "Mini LED"
	PanelNanoCell = "NanoCell"
	PanelLED      = "LED"
)

// Most specific first: "qled" must win over "led". Only the leading edge is
// anchored so model codes like "OLED55C3" still match; plain "led" also needs a
// word end or digit after it so "leden" is not a panel.
var panelPatterns = []struct {
	re    *regexp.Regexp
	panel string
}{
	{regexp.MustCompile(`\bneo[\s-]?qled`), PanelNeoQLED},
	{regexp.MustCompile(`\bqled`), PanelQLED},
	{regexp.MustCompile(`\boled`), PanelOLED},
	{regexp.MustCompile(`\bmini[\s-]?led`), PanelMiniLED},
	{regexp.MustCompile(`\bnanocell`), PanelNanoCell},
	{regexp.MustCompile(`\bled(?:\b|\d)`), PanelLED},
}

// DetectPanelType returns the panel technology mentioned in text, or "".
func DetectPanelType(text string) string {
	lower := strings.ToLower(text)
	for _, p := range panelPatterns {
		if p.re.MatchString(lower) {
			return p.panel
		}
	}
	return ""
}

// Short brand names need word boundaries ("lg" inside other words)
var shortBrandPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp)
	for _, b := range KnownBrands {
		if len(b) <= 3 {
			m[b] = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(b)) + `\b`)
		}
	}
	return m
}()

// DetectBrands returns every known brand contained in text, in KnownBrands order.
func DetectBrands(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, b := range KnownBrands {
		if re, ok := shortBrandPatterns[b]; ok {
			if re.MatchString(lower) {
				found = append(found, b)
			}
			continue
		}
		if strings.Contains(lower, strings.ToLower(b)) {
			found = append(found, b)
		}
	}
	return found
}
