package commands

import (
	"fmt"
	"sort"

	"tv-keuzehulp-be/pkg/catalog"
	"tv-keuzehulp-be/pkg/recommend"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the catalog as the server would load it",
	RunE:  runProducts,
}

func init() {
	rootCmd.AddCommand(productsCmd)
}

func runProducts(cmd *cobra.Command, args []string) error {
	c, err := catalog.LoadCSV(catalogPath)
	if err != nil {
		return err
	}

	color.Cyan("Catalog %s: %d products", catalogPath, c.Len())

	columns := c.Columns()
	roles := make([]string, 0, len(columns))
	for role := range columns {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		fmt.Printf("  %-12s <- %q\n", role, columns[role])
	}
	fmt.Println()

	for _, p := range c.All() {
		fmt.Println(recommend.Bullet(p))
	}
	return nil
}
