package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnglishHeaders(t *testing.T) {
	data := `name,brand,price,screen size,panel type,resolution,category,availability
Samsung QE55Q80C,Samsung,999.00,55,QLED,4K,TV,in stock
LG OLED65C3,LG,1899,65,OLED,4K,TV,in stock
`
	c, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	p := c.All()[0]
	assert.Equal(t, "Samsung QE55Q80C", p.Name)
	assert.Equal(t, "Samsung", p.Brand)
	assert.Equal(t, 999.0, p.Price)
	assert.Equal(t, 55.0, p.SizeInch)
	assert.Equal(t, "QLED", p.PanelType)
	assert.Equal(t, "4K", p.Resolution)
	assert.Equal(t, "TV", p.Category)
	assert.Equal(t, "in stock", p.Availability)
}

func TestParseDutchHeadersSemicolon(t *testing.T) {
	data := `Productnaam;Merk;Prijs;Schermformaat;Categorie
Philips 50PUS8108 Ambilight;Philips;€ 1.099,00;50 inch;Televisies
Sony Bravia XR-65A80L OLED;Sony;1.799;65;Televisies
`
	c, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	cols := c.Columns()
	assert.Equal(t, "Productnaam", cols[ColumnName])
	assert.Equal(t, "Merk", cols[ColumnBrand])
	assert.Equal(t, "Prijs", cols[ColumnPrice])
	assert.Equal(t, "Schermformaat", cols[ColumnSize])

	products := c.All()
	assert.Equal(t, 1099.0, products[0].Price)
	assert.Equal(t, 50.0, products[0].SizeInch)
	assert.Equal(t, 1799.0, products[1].Price)
	assert.Equal(t, "OLED", products[1].PanelType, "panel derived from the name")
}

func TestParseStripsByteOrderMark(t *testing.T) {
	data := "\ufeffProductnaam;Merk;Prijs\nLG OLED55C3;LG;1.399\n"

	c, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	assert.Equal(t, "Productnaam", c.Columns()[ColumnName])
	assert.Equal(t, "LG OLED55C3", c.All()[0].Name)
	assert.Equal(t, 1399.0, c.All()[0].Price)
}

func TestParseDerivesFieldsFromName(t *testing.T) {
	data := `product,extra
"LG OLED55C3 120Hz €1.499",x
Hisense 43A6K LED,y
Onbekend merk,z
`
	c, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	products := c.All()
	require.Len(t, products, 3)

	assert.Equal(t, "LG", products[0].Brand)
	assert.Equal(t, 1499.0, products[0].Price)
	assert.Equal(t, 55.0, products[0].SizeInch)
	assert.Equal(t, PanelOLED, products[0].PanelType)

	assert.Equal(t, "Hisense", products[1].Brand)
	assert.Equal(t, 43.0, products[1].SizeInch)
	assert.Equal(t, PanelLED, products[1].PanelType)
	assert.False(t, products[1].HasPrice())

	assert.Empty(t, products[2].Brand)
	assert.False(t, products[2].HasSize())
}

func TestParseSkipsBlankRows(t *testing.T) {
	data := "name,price\nA,100\n,\nB,200\n"
	c, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader("   \n"))
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("naam,prijs\nTCL 55C805,649\n"), 0o644))

	c, err := LoadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "TCL", c.All()[0].Brand)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestHeadAndAllAreCopies(t *testing.T) {
	c := New([]Product{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}})

	head := c.Head(3)
	require.Len(t, head, 3)
	head[0].Name = "changed"
	assert.Equal(t, "A", c.All()[0].Name)

	assert.Len(t, c.Head(10), 4)
	assert.Empty(t, c.Head(-1))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"€ 1.299,00", 1299},
		{"1299.99", 1299.99},
		{"1,299.00", 1299},
		{"1299", 1299},
		{"€799", 799},
		{"1.299", 1299},
		{"499,95", 499.95},
		{"n.v.t.", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParsePrice(tt.in), 0.001)
		})
	}
}

func TestDetectPanelType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Samsung Neo QLED QN90", PanelNeoQLED},
		{"ik wil qled", PanelQLED},
		{"een OLED graag", PanelOLED},
		{"mini-led tv", PanelMiniLED},
		{"LG NanoCell", PanelNanoCell},
		{"gewoon een led tv", PanelLED},
		{"led", PanelLED},
		{"hisense led43", PanelLED},
		{"lang geleden", ""},
		{"mijn leden kijken films", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPanelType(tt.in))
		})
	}
}

func TestDetectBrands(t *testing.T) {
	assert.Equal(t, []string{"Samsung", "LG"}, DetectBrands("samsung of lg?"))
	assert.Empty(t, DetectBrands("algemeen"), "lg inside a word is not a brand")
	assert.Equal(t, []string{"TCL"}, DetectBrands("Een TCL toestel"))
}
