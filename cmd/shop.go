package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/studybuddy/internal/shop"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Inspect the chest and armor catalog",
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chests with their odds, and armor",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog, err := shop.LoadCatalog(cfg.Shop.Catalog)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(catalog)
		}

		fmt.Fprintln(w, "Chests")
		fmt.Fprintln(w, strings.Repeat("─", 48))
		for _, ch := range catalog.Chests {
			fmt.Fprintf(w, "%-28s  %6d pts\n", ch.Name, ch.Cost)
			for _, o := range ch.Table.Outcomes {
				fmt.Fprintf(w, "  %5.1f%%  %s\n", o.Probability*100, o.Label)
			}
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Armor")
		fmt.Fprintln(w, strings.Repeat("─", 48))
		for _, a := range catalog.Armor {
			fmt.Fprintf(w, "%-28s  %6d pts\n", a.Name, a.Cost)
		}
		return nil
	},
}

func init() {
	shopListCmd.Flags().Bool("yaml", false, "Print the catalog as YAML (a starting point for shop.catalog)")

	shopCmd.AddCommand(shopListCmd)
}
