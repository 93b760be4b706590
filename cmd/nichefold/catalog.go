package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"nichefold/pkg/niche"
	"nichefold/pkg/template"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the niche catalog and starter files as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			niches, err := niche.NewCatalog().YAML()
			if err != nil {
				return fmt.Errorf("failed to encode catalog: %w", err)
			}
			files, err := yaml.Marshal(map[string][]string{
				"templates": template.NewEngine().Filenames(),
			})
			if err != nil {
				return fmt.Errorf("failed to encode templates: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, string(niches))
			fmt.Fprint(out, string(files))
			return nil
		},
	}
}
