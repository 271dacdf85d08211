package recommend

import (
	"math"
	"sort"
	"strings"

	"tv-keuzehulp-be/pkg/catalog"
	"tv-keuzehulp-be/pkg/preference"
)

const (
	DefaultLimit = 3

	sizeWindow        = 5.0
	relaxedSizeWindow = 10.0
	budgetRelaxFactor = 1.2
)

// Relaxation names one loosening step applied when a filter pass came back empty
type Relaxation string

const (
	RelaxDropBrand   Relaxation = "drop_brand"
	RelaxWidenSize   Relaxation = "widen_size"
	RelaxRaiseBudget Relaxation = "raise_budget"
)

// Result is the outcome of a recommendation pass
type Result struct {
	Products    []catalog.Product
	Relaxations []Relaxation
	// Fallback is set when no filter combination matched and the
	// unfiltered head of the catalog was used
	Fallback bool
}

// Level is the number of loosening steps taken, with the fallback counted as one more
func (r Result) Level() int {
	if r.Fallback {
		return len(r.Relaxations) + 1
	}
	return len(r.Relaxations)
}

type filter struct {
	brands     []string
	size       float64
	sizeWindow float64
	budget     float64
}

func (f filter) match(p catalog.Product) bool {
	if len(f.brands) > 0 && !matchesBrand(p, f.brands) {
		return false
	}
	if f.size > 0 {
		if !p.HasSize() || math.Abs(p.SizeInch-f.size) > f.sizeWindow {
			return false
		}
	}
	if f.budget > 0 {
		if !p.HasPrice() || p.Price > f.budget {
			return false
		}
	}
	return true
}

func matchesBrand(p catalog.Product, brands []string) bool {
	brand := strings.ToLower(p.Brand)
	for _, b := range brands {
		if b != "" && strings.Contains(brand, strings.ToLower(b)) {
			return true
		}
	}
	return false
}

// Recommender filters the catalog by preferences, loosening constraints in a
// fixed order until something matches
type Recommender struct {
	limit int
}

func NewRecommender(limit int) *Recommender {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Recommender{limit: limit}
}

// Recommend never returns an empty product list for a non-empty catalog.
// Relaxations are cumulative: brand is dropped, then the size window widens
// to ±10, then the budget is raised by 20%.
func (r *Recommender) Recommend(prefs preference.Preferences, c *catalog.Catalog) Result {
	if c == nil || c.Len() == 0 {
		return Result{}
	}
	products := c.All()

	f := filter{
		brands:     prefs.Brands,
		size:       float64(prefs.SizeInch),
		sizeWindow: sizeWindow,
		budget:     float64(prefs.Budget),
	}

	var result Result
	if matched := r.apply(f, products, prefs.Technology); len(matched) > 0 {
		result.Products = matched
		return result
	}

	steps := []struct {
		applies bool
		relax   Relaxation
		loosen  func(*filter)
	}{
		{len(f.brands) > 0, RelaxDropBrand, func(f *filter) { f.brands = nil }},
		{f.size > 0, RelaxWidenSize, func(f *filter) { f.sizeWindow = relaxedSizeWindow }},
		{f.budget > 0, RelaxRaiseBudget, func(f *filter) { f.budget *= budgetRelaxFactor }},
	}

	for _, step := range steps {
		if !step.applies {
			continue
		}
		step.loosen(&f)
		result.Relaxations = append(result.Relaxations, step.relax)
		if matched := r.apply(f, products, prefs.Technology); len(matched) > 0 {
			result.Products = matched
			return result
		}
	}

	result.Fallback = true
	result.Products = c.Head(r.limit)
	return result
}

// apply filters, puts products with the preferred panel type first and truncates
func (r *Recommender) apply(f filter, products []catalog.Product, technology string) []catalog.Product {
	var matched []catalog.Product
	for _, p := range products {
		if f.match(p) {
			matched = append(matched, p)
		}
	}

	if technology != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			return panelMatches(matched[i], technology) && !panelMatches(matched[j], technology)
		})
	}

	if len(matched) > r.limit {
		matched = matched[:r.limit]
	}
	return matched
}

func panelMatches(p catalog.Product, technology string) bool {
	return p.PanelType != "" && strings.EqualFold(p.PanelType, technology)
}
