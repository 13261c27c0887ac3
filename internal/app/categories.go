package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fernwood-labs/carbontrack/internal/report"
	"github.com/fernwood-labs/carbontrack/internal/store"
)

var (
	categoriesAddUnit   string
	categoriesAddFactor float64
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the emission-factor catalog",
	Long: `List every activity category with its unit and carbon factor.

Factors are kg CO2 per unit and are immutable once set: historical records
are interpreted against them.`,
	RunE: runCategories,
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category to the catalog",
	Long: `Add a new activity category with a unit and carbon factor.

If a category with the same name already exists, its factor is kept and the
command reports the existing entry instead of overwriting it.`,
	Example: `  carbontrack categories add "Bus Commute" --unit km --factor 0.089`,
	Args:    cobra.ExactArgs(1),
	RunE:    runCategoriesAdd,
}

func init() {
	categoriesAddCmd.Flags().StringVar(&categoriesAddUnit, "unit", "", "Unit the quantity is measured in (required)")
	categoriesAddCmd.Flags().Float64Var(&categoriesAddFactor, "factor", 0, "Carbon factor in kg CO2 per unit (required)")
	categoriesAddCmd.MarkFlagRequired("unit")
	categoriesAddCmd.MarkFlagRequired("factor")

	categoriesCmd.AddCommand(categoriesAddCmd)
	RootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	categories, err := st.ListCategories()
	if err != nil {
		return err
	}

	fmt.Print(report.RenderCategoryTable(categories))
	return nil
}

func runCategoriesAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	cat := &store.Category{
		Name:         args[0],
		Unit:         categoriesAddUnit,
		CarbonFactor: categoriesAddFactor,
	}
	if _, err := st.UpsertCategory(cat); err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}

	existing, err := st.GetCategory(args[0])
	if err != nil {
		return err
	}
	if existing.CarbonFactor != categoriesAddFactor {
		fmt.Printf("Category %s already exists with factor %.4f; factors are immutable\n",
			existing.Name, existing.CarbonFactor)
		return nil
	}

	fmt.Printf("%s Added category %s (%.4f kg CO2 per %s)\n",
		report.Green("✓"), existing.Name, existing.CarbonFactor, existing.Unit)
	return nil
}
