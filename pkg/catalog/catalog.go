package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ColumnName         = "name"
	ColumnBrand        = "brand"
	ColumnPrice        = "price"
	ColumnSize         = "size"
	ColumnPanel        = "panel"
	ColumnResolution   = "resolution"
	ColumnCategory     = "category"
	ColumnAvailability = "availability"
)

// English and Dutch header synonyms, probed by substring. Order matters:
// a header is claimed by the first column role that matches it.
var columnSynonyms = []struct {
	role     string
	synonyms []string
}{
	{ColumnBrand, []string{"brand", "merk"}},
	{ColumnPrice, []string{"price", "prijs"}},
	{ColumnResolution, []string{"resolution", "resolutie"}},
	{ColumnCategory, []string{"category", "categorie"}},
	{ColumnAvailability, []string{"availability", "beschikbaar", "voorraad", "stock"}},
	{ColumnPanel, []string{"panel", "paneel", "technologie", "technology", "type"}},
	{ColumnSize, []string{"size", "formaat", "inch", "diagonaal", "scherm"}},
	{ColumnName, []string{"name", "naam", "product", "titel", "title", "model"}},
}

var ErrEmptyCatalog = errors.New("catalog file has no header row")

// Catalog is the read-only product table loaded once at startup
type Catalog struct {
	products []Product
	columns  map[string]string
}

// New wraps an already materialised product list
func New(products []Product) *Catalog {
	return &Catalog{products: append([]Product(nil), products...), columns: map[string]string{}}
}

func LoadCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a comma or semicolon separated product file. Column names are
// resolved by substring search so differently named exports load the same way.
func Parse(r io.Reader) (*Catalog, error) {
	br := bufio.NewReader(r)
	firstLine, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(strings.TrimSpace(string(firstLine))) == 0 {
		return nil, ErrEmptyCatalog
	}

	reader := csv.NewReader(br)
	reader.Comma = detectDelimiter(string(firstLine))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	columns := resolveColumns(header)

	var products []Product
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row %d: %w", len(products)+2, err)
		}
		if isBlank(record) {
			continue
		}
		products = append(products, buildProduct(header, columns, record))
	}

	return &Catalog{products: products, columns: columns}, nil
}

func detectDelimiter(sample string) rune {
	line := sample
	if idx := strings.IndexByte(sample, '\n'); idx >= 0 {
		line = sample[:idx]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

// resolveColumns maps a column role to the header it was found under
func resolveColumns(header []string) map[string]string {
	columns := make(map[string]string)
	claimed := make(map[string]bool)

	for _, cs := range columnSynonyms {
		for _, h := range header {
			if claimed[h] {
				continue
			}
			lower := strings.ToLower(h)
			if containsAny(lower, cs.synonyms) {
				columns[cs.role] = h
				claimed[h] = true
				break
			}
		}
	}

	// no recognisable name column: the first unclaimed header holds the name
	if _, ok := columns[ColumnName]; !ok {
		for _, h := range header {
			if !claimed[h] {
				columns[ColumnName] = h
				break
			}
		}
	}
	return columns
}

func buildProduct(header []string, columns map[string]string, record []string) Product {
	raw := make(map[string]string, len(header))
	for i, h := range header {
		if i < len(record) {
			raw[h] = strings.TrimSpace(record[i])
		}
	}

	get := func(role string) string {
		if h, ok := columns[role]; ok {
			return raw[h]
		}
		return ""
	}

	p := Product{
		Name:         get(ColumnName),
		Brand:        get(ColumnBrand),
		Price:        ParsePrice(get(ColumnPrice)),
		SizeInch:     ParseSize(get(ColumnSize)),
		PanelType:    get(ColumnPanel),
		Resolution:   get(ColumnResolution),
		Category:     get(ColumnCategory),
		Availability: get(ColumnAvailability),
		Raw:          raw,
	}

	// fill blanks from the product name
	if p.Brand == "" {
		p.Brand = brandFromName(p.Name)
	}
	if !p.HasPrice() {
		p.Price = priceFromName(p.Name)
	}
	if !p.HasSize() {
		p.SizeInch = sizeFromName(p.Name)
	}
	if p.PanelType == "" {
		p.PanelType = DetectPanelType(p.Name)
	}
	return p
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// All returns a copy of every product in load order
func (c *Catalog) All() []Product {
	return append([]Product(nil), c.products...)
}

// Head returns at most n products in load order
func (c *Catalog) Head(n int) []Product {
	if n > len(c.products) {
		n = len(c.products)
	}
	if n < 0 {
		n = 0
	}
	return append([]Product(nil), c.products[:n]...)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Columns reports which header was used for each recognised column role
func (c *Catalog) Columns() map[string]string {
	out := make(map[string]string, len(c.columns))
	for k, v := range c.columns {
		out[k] = v
	}
	return out
}
