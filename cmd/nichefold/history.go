package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"nichefold/pkg/config"
	"nichefold/pkg/history"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit int
		stats bool
		days  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently created client projects",
		Example: `  nichefold history           # Last 20 builds
  nichefold history -n 5     # Last 5 builds
  nichefold history -n 0     # Everything
  nichefold history --stats  # Builds per niche, last 30 days`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			if stats {
				return printStats(cmd, db, days)
			}

			entries, err := db.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "No projects created yet.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tCLIENT\tNICHE\tDIRS\tFILES\tLOCATION")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					e.CreatedAt.Local().Format("2006-01-02 15:04"),
					e.Client,
					e.NicheName,
					e.Directories,
					len(e.FilesCreated),
					e.Root,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of builds to show (0 for all)")
	cmd.Flags().BoolVar(&stats, "stats", false, "Show a summary instead of the list")
	cmd.Flags().IntVar(&days, "days", 30, "Days covered by --stats (0 for all)")
	return cmd
}

func printStats(cmd *cobra.Command, db *history.HistoryDB, days int) error {
	s, err := db.Stats(cmd.Context(), days)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if days > 0 {
		fmt.Fprintf(out, "📈 Projects (Last %d Days)\n", days)
	} else {
		fmt.Fprintln(out, "📈 Projects (All Time)")
	}
	fmt.Fprintln(out, "================================")
	fmt.Fprintf(out, "Projects created: %d\n", s.Builds)
	fmt.Fprintf(out, "Distinct clients: %d\n", s.Clients)

	if len(s.TopNiche) > 0 {
		fmt.Fprintln(out, "\nBy niche:")
		for _, n := range s.TopNiche {
			fmt.Fprintf(out, "  %s: %d\n", n.Name, n.Count)
		}
	}
	return nil
}
