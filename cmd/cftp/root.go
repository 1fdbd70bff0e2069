package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cftp/internal/config"
	"github.com/katalvlaran/cftp/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cftp",
		Short: "Exact Ising sampling by coupling from the past",
		Long: `cftp runs Propp-Wilson coupling from the past on a K×K Ising lattice
with heat-bath dynamics and prints a JSON report of the exact samples.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "YAML run configuration")
	root.PersistentFlags().String("log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newSampleCmd(),
		newForwardCmd(),
		newExactCmd(),
		newRunsCmd(),
		newVersionCmd(),
	)
	return root
}

// settings loads the config file, applies explicitly set flags on top and
// builds the logger.
func settings(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logging.NewWriter(cmd.ErrOrStderr(), level), nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("lattice") {
		cfg.Lattice, _ = f.GetInt("lattice")
	}
	if f.Changed("beta") {
		cfg.Beta, _ = f.GetFloat64("beta")
	}
	if f.Changed("samples") {
		cfg.Samples, _ = f.GetInt("samples")
	}
	if f.Changed("max-time") {
		cfg.MaxTime, _ = f.GetInt("max-time")
	}
	if f.Changed("burn-in") {
		cfg.BurnIn, _ = f.GetInt("burn-in")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetUint64("seed")
	}
	if f.Changed("source") {
		cfg.Source, _ = f.GetString("source")
	}
	if f.Changed("backend") {
		cfg.Backend, _ = f.GetString("backend")
	}
	if f.Changed("workers") {
		cfg.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("check-monotone") {
		cfg.CheckMonotone, _ = f.GetBool("check-monotone")
	}
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("store") {
		cfg.Store, _ = f.GetString("store")
	}
	if f.Changed("metrics-out") {
		cfg.MetricsOut, _ = f.GetString("metrics-out")
	}
}

// latticeFlags registers the flags shared by every simulating command.
func latticeFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("lattice", "k", 0, "lattice side K")
	cmd.Flags().Float64("beta", 0, "inverse temperature, β ≥ 0")
}

// chainFlags registers draw-source and execution flags.
func chainFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("samples", "n", 0, "number of independent samples")
	cmd.Flags().Uint64("seed", 0, "master seed")
	cmd.Flags().String("source", "", "draw source: chacha20 or blake2b")
	cmd.Flags().String("backend", "", "execution backend: serial or parallel")
	cmd.Flags().Int("workers", 0, "parallel workers, 0 for GOMAXPROCS")
	cmd.Flags().Bool("emit-samples", false, "embed the sampled lattices in the report")
}

// outputFlags registers persistence flags.
func outputFlags(cmd *cobra.Command) {
	cmd.Flags().String("store", "", "SQLite file to record the run in")
	cmd.Flags().String("metrics-out", "", "write Prometheus metrics to this textfile")
}
