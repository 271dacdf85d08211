package preference

import (
	"regexp"
	"strconv"
	"strings"

	"tv-keuzehulp-be/pkg/catalog"
	"tv-keuzehulp-be/pkg/store"
)

const (
	CategoryUsage      = "usage"
	CategoryBudget     = "budget"
	CategoryBrand      = "brand"
	CategorySize       = "size"
	CategoryTechnology = "technology"
)

var (
	currencyMarker  = regexp.MustCompile(`€|\beuro?\b|\bbudget\b|\bmaximaal\b`)
	adjacentAmount  = regexp.MustCompile(`€\s*(\d+(?:[.,]\d{3})*)|(\d+(?:[.,]\d{3})*)\s*(?:€|euro?\b|,-)|\b(?:budget|maximaal)\s*(?:is\s*|van\s*)?(\d+(?:[.,]\d{3})*)`)
	digitRun        = regexp.MustCompile(`\d+(?:[.,]\d{3})*`)
	sizeWithUnit    = regexp.MustCompile(`\b(\d{2,3})\s*(?:inch|duim|"|”|'')`)
	thousandsSep    = strings.NewReplacer(".", "", ",", "")
	defaultUsageSet = []string{
		"films", "film", "series", "serie", "sport", "voetbal", "gaming", "games",
		"nieuws", "dagelijks", "kinderen", "youtube", "streaming", "netflix",
	}
)

// Preferences is what has been inferred about the shopper so far
type Preferences struct {
	Brands        []string
	SizeInch      int
	SizeLiteral   string
	Budget        int
	BudgetLiteral string
	Technology    string
	Usage         []string
}

// Record overwrites one category with a literal match
func (p *Preferences) Record(category, literal string) {
	switch category {
	case CategoryBudget:
		if v, err := strconv.Atoi(thousandsSep.Replace(literal)); err == nil {
			p.Budget = v
			p.BudgetLiteral = literal
		}
	case CategorySize:
		if v, err := strconv.Atoi(literal); err == nil {
			p.SizeInch = v
			p.SizeLiteral = literal
		}
	case CategoryBrand:
		p.Brands = splitList(literal)
	case CategoryTechnology:
		p.Technology = literal
	case CategoryUsage:
		for _, u := range p.Usage {
			if u == literal {
				return
			}
		}
		p.Usage = append(p.Usage, literal)
	}
}

func (p Preferences) Brand() string {
	return strings.Join(p.Brands, ", ")
}

func (p Preferences) UsageNote() string {
	return strings.Join(p.Usage, ", ")
}

func (p Preferences) Empty() bool {
	return len(p.Brands) == 0 && p.SizeInch == 0 && p.Budget == 0 && p.Technology == "" && len(p.Usage) == 0
}

// Map exposes the flat category -> literal view kept in the session
func (p Preferences) Map() map[string]string {
	m := make(map[string]string)
	if len(p.Brands) > 0 {
		m[CategoryBrand] = p.Brand()
	}
	if p.SizeInch > 0 {
		m[CategorySize] = p.SizeLiteral
	}
	if p.Budget > 0 {
		m[CategoryBudget] = p.BudgetLiteral
	}
	if p.Technology != "" {
		m[CategoryTechnology] = p.Technology
	}
	if len(p.Usage) > 0 {
		m[CategoryUsage] = p.UsageNote()
	}
	return m
}

// FromMap rebuilds preferences from the flat session mapping
func FromMap(m map[string]string) Preferences {
	var p Preferences
	for _, c := range []string{CategoryBrand, CategorySize, CategoryBudget, CategoryTechnology} {
		if v, ok := m[c]; ok && v != "" {
			p.Record(c, v)
		}
	}
	for _, u := range splitList(m[CategoryUsage]) {
		p.Record(CategoryUsage, u)
	}
	return p
}

// Extractor infers preferences from user utterances with fixed keyword sets
type Extractor struct {
	usageKeywords []string
}

func NewExtractor() *Extractor {
	return &Extractor{usageKeywords: defaultUsageSet}
}

// Extract scans the user turns of a conversation in order. Later turns
// overwrite budget, size, technology and brand.
func (e *Extractor) Extract(turns []store.Turn) Preferences {
	return e.ExtractTexts(store.UserTurns(turns))
}

func (e *Extractor) ExtractTexts(texts []string) Preferences {
	var p Preferences
	for _, text := range texts {
		e.scan(&p, strings.ToLower(text))
	}
	return p
}

func (e *Extractor) scan(p *Preferences, text string) {
	sizeMatch := sizeWithUnit.FindStringSubmatchIndex(text)
	if sizeMatch != nil {
		p.Record(CategorySize, text[sizeMatch[2]:sizeMatch[3]])
	}

	if budget := findBudget(text, sizeMatch); budget != "" {
		p.Record(CategoryBudget, budget)
	}

	if brands := catalog.DetectBrands(text); len(brands) > 0 {
		p.Record(CategoryBrand, strings.Join(brands, ", "))
	}

	if tech := catalog.DetectPanelType(text); tech != "" {
		p.Record(CategoryTechnology, tech)
	}

	for _, kw := range e.usageKeywords {
		if strings.Contains(text, kw) {
			p.Record(CategoryUsage, kw)
			break
		}
	}
}

// findBudget prefers an amount directly next to a currency sign or the words
// budget/maximaal; otherwise the first digit run that is not the screen size,
// as long as a marker is present.
func findBudget(text string, sizeMatch []int) string {
	if !currencyMarker.MatchString(text) {
		return ""
	}
	if m := adjacentAmount.FindStringSubmatch(text); m != nil {
		for _, group := range m[1:] {
			if group != "" {
				return group
			}
		}
	}
	for _, loc := range digitRun.FindAllStringIndex(text, -1) {
		if sizeMatch != nil && loc[0] == sizeMatch[2] {
			continue
		}
		return text[loc[0]:loc[1]]
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
