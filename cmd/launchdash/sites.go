package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davetashner/launchdash/internal/config"
	"github.com/davetashner/launchdash/internal/selection"
)

var sitesAll bool

// sitesCmd lists the dropdown's site values.
var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List launch sites in dataset order",
	Args:  cobra.NoArgs,
	RunE:  runSites,
}

func init() {
	sitesCmd.Flags().BoolVar(&sitesAll, "all", false, "list every dropdown option, "+selection.AllSites+" first, as value<TAB>label")
}

func runSites(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(config.Overrides{})
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if !sitesAll {
		for _, site := range ds.DistinctSites() {
			_, _ = fmt.Fprintln(w, site)
		}
		return nil
	}

	// With --all, print the dropdown options as value<TAB>label.
	_, _ = fmt.Fprintf(w, "%s\t%s\n", selection.AllSites, selection.AllSitesLabel)
	for _, site := range ds.DistinctSites() {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", site, site)
	}
	return nil
}
