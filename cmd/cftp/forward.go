package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/cftp/cftp"
	"github.com/katalvlaran/cftp/internal/report"
)

func newForwardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Run forward heat-bath chains from random starts",
		Long: `forward runs independent chains for --burn-in sweeps and reports the
final states. The output is only approximately stationary and serves as a
baseline for exact samples.`,
		Args: cobra.NoArgs,
		RunE: runForward,
	}
	latticeFlags(cmd)
	chainFlags(cmd)
	outputFlags(cmd)
	cmd.Flags().Int("burn-in", 0, "sweeps per chain")
	return cmd
}

func runForward(cmd *cobra.Command, _ []string) error {
	cfg, log, err := settings(cmd)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	s, err := newSampler(cfg, log, cftp.NewMetrics(reg))
	if err != nil {
		return err
	}

	res, err := s.Forward(cmd.Context(), cfg.ForwardRequest())
	if err != nil {
		return err
	}
	withSamples, _ := cmd.Flags().GetBool("emit-samples")
	return emit(cmd, cfg, log, report.FromForward(res, runInfo(cfg), withSamples), reg)
}
