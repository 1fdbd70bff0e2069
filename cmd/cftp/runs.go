package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cftp/internal/report"
)

var errNoStore = errors.New("no store configured, pass --store or set store in the config file")

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded runs",
	}
	cmd.PersistentFlags().String("store", "", "SQLite file holding recorded runs")

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			entries, err := st.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No recorded runs.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s\t%s\t%s\tk=%d\tbeta=%g\tn=%d\tconverged=%d\tnon_converged=%d\n",
					e.ID, e.Method, e.CreatedAt, e.K, e.Beta, e.N, e.Converged, e.NonConverged)
			}
			return nil
		},
	}
	ls.Flags().Int("limit", 20, "maximum runs to list, 0 for all")

	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the full report of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			rep, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), rep)
		},
	}

	cmd.AddCommand(ls, show)
	return cmd
}

func openStore(cmd *cobra.Command) (*report.Store, error) {
	cfg, _, err := settings(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Store == "" {
		return nil, errNoStore
	}
	return report.Open(cmd.Context(), cfg.Store)
}
