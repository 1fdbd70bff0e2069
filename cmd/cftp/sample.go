package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/cftp/backend"
	"github.com/katalvlaran/cftp/cftp"
	"github.com/katalvlaran/cftp/draws"
	"github.com/katalvlaran/cftp/internal/config"
	"github.com/katalvlaran/cftp/internal/report"
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw exact samples by coupling from the past",
		Long: `sample doubles the backward window until the all-Low and all-High chains
coalesce or the window would exceed --max-time. Samples that did not
coalesce are reported as non-converged; --strict turns that into a
non-zero exit.`,
		Args: cobra.NoArgs,
		RunE: runSample,
	}
	latticeFlags(cmd)
	chainFlags(cmd)
	outputFlags(cmd)
	cmd.Flags().Int("max-time", 0, "largest backward window")
	cmd.Flags().Bool("check-monotone", false, "verify bottom ≤ top after every sweep")
	cmd.Flags().Bool("strict", false, "fail when any sample did not converge")
	return cmd
}

func runSample(cmd *cobra.Command, _ []string) error {
	cfg, log, err := settings(cmd)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	s, err := newSampler(cfg, log, cftp.NewMetrics(reg))
	if err != nil {
		return err
	}

	res, runErr := s.Sample(cmd.Context(), cfg.Request())
	if res == nil {
		return runErr
	}

	withSamples, _ := cmd.Flags().GetBool("emit-samples")
	rep := report.FromSample(res, runInfo(cfg), withSamples)
	if err := emit(cmd, cfg, log, rep, reg); err != nil {
		return errors.Join(runErr, err)
	}
	if runErr != nil {
		return runErr
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		return res.Err()
	}
	return nil
}

func newSampler(cfg config.Config, log *slog.Logger, m *cftp.Metrics) (*cftp.Sampler, error) {
	b, err := backend.Lookup(cfg.Backend, cfg.Workers)
	if err != nil {
		return nil, err
	}
	src, err := draws.New(cfg.Source, cfg.Seed)
	if err != nil {
		return nil, err
	}
	return cftp.New(
		cftp.WithSource(src),
		cftp.WithBackend(b),
		cftp.WithLogger(log),
		cftp.WithMetrics(m),
		cftp.WithMonotoneCheck(cfg.CheckMonotone),
	), nil
}

func runInfo(cfg config.Config) report.Run {
	return report.Run{Seed: cfg.Seed, Source: cfg.Source, Backend: cfg.Backend}
}

// emit prints rep, records it in the store and dumps metrics, as configured.
func emit(cmd *cobra.Command, cfg config.Config, log *slog.Logger, rep report.Report, reg *prometheus.Registry) error {
	if err := report.Write(cmd.OutOrStdout(), rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if cfg.Store != "" {
		st, err := report.Open(cmd.Context(), cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Save(cmd.Context(), rep); err != nil {
			return err
		}
		log.Info("run recorded", "id", rep.ID, "store", cfg.Store)
	}
	if cfg.MetricsOut != "" && reg != nil {
		if err := prometheus.WriteToTextfile(cfg.MetricsOut, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
