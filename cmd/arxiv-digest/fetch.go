package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/fetcher"
	"github.com/pdiddy/arxiv-digest/internal/metrics"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [topic...]",
	Short: "Fetch recent papers for one or more topics",
	Long: `Fetch searches arXiv for every topic (given as arguments or in a YAML topics
file), newest submissions first. Papers older than --hours-back are dropped,
papers matching several topics are listed once, and the merged list is
printed newest first.

With no topics the command prints an empty result.`,
	Example: `  arxiv-digest fetch "machine learning" "quantum computing"
  arxiv-digest fetch --topics-file topics.yaml --hours-back 48 --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topics := args
		if path, _ := cmd.Flags().GetString("topics-file"); path != "" {
			fromFile, err := fetcher.ReadTopicsFile(path)
			if err != nil {
				return err
			}
			topics = append(topics, fromFile...)
		}

		maxResults, _ := cmd.Flags().GetInt("max-results")
		delay, _ := cmd.Flags().GetFloat64("delay")
		hoursBack, _ := cmd.Flags().GetInt("hours-back")
		format, _ := cmd.Flags().GetString("format")
		textfile, _ := cmd.Flags().GetString("metrics-textfile")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		ctx := cmd.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		overrides := types.FetchConfig{
			MaxResults: maxResults,
			Delay:      types.SecondsToDuration(delay),
			HoursBack:  hoursBack,
		}
		cfg := overrides.Resolve(settings.FetchConfig())

		opts := []fetcher.Option{
			fetcher.WithLogger(logger),
			fetcher.WithUserAgent(settings.ArxivUserAgent),
		}
		reg := prometheus.NewRegistry()
		if textfile != "" {
			m, err := metrics.New(reg)
			if err != nil {
				return err
			}
			opts = append(opts, fetcher.WithMetrics(m))
		}

		papers, searchErr := fetcher.New(cfg, opts...).SearchPapers(ctx, topics)

		if textfile != "" {
			if err := metrics.WriteTextfile(textfile, reg); err != nil {
				logger.WithError(err).Warn("could not write metrics")
			}
		}
		if searchErr != nil {
			return fmt.Errorf("fetch: %w", searchErr)
		}
		return fetcher.Format(papers, format, os.Stdout)
	},
}

func init() {
	fetchCmd.Flags().String("topics-file", "", "YAML file with a topics list")
	fetchCmd.Flags().Int("max-results", 0, "maximum results requested per topic (default from ARXIV_MAX_RESULTS)")
	fetchCmd.Flags().Float64("delay", 0, "seconds between arXiv requests (default from ARXIV_DELAY_SECONDS)")
	fetchCmd.Flags().Int("hours-back", 0, "recency window in hours (default from ARXIV_HOURS_BACK)")
	fetchCmd.Flags().String("format", fetcher.FormatTable, "output format: table, json, or yaml")
	fetchCmd.Flags().Duration("timeout", 0, "abort the whole run after this duration (0 disables)")
	fetchCmd.Flags().String("metrics-textfile", "", "write Prometheus metrics to this file after the run")

	rootCmd.AddCommand(fetchCmd)
}
