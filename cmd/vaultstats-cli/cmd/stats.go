package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"vaultstats/internal/application/commands"
	"vaultstats/internal/domain"
	"vaultstats/internal/scan"
)

// scanFlags are shared by the commands that run a scan
type scanFlags struct {
	extensions []string
	workers    int
	timeout    time.Duration
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.extensions, "ext", nil, "document extensions to scan (default from config, .md)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "documents read concurrently (0 = 4 x CPUs, negative = unbounded)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "abort the scan after this duration")
}

// run scans the vault with the flag overrides applied over the config
func (f *scanFlags) run(cmd *cobra.Command, a *app, top int) (*commands.StatsResult, error) {
	extensions := a.cfg.Extensions
	if cmd.Flags().Changed("ext") {
		extensions = f.extensions
	}
	workers := a.cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers = f.workers
	}

	ctx := cmd.Context()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	return commands.NewStatsCommand(a.scanner(extensions, workers), a.cfg.VaultPath, top).Execute(ctx)
}

func newStatsCmd(a *app) *cobra.Command {
	var flags scanFlags
	var top int
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print statistics of the vault",
		Long: `Scan every note of the vault and print the total number of wiki links,
the total number of words and the most frequent tags.

Unreadable notes are skipped and counted.

Examples:
  vaultstats-cli stats
  vaultstats-cli stats --top 10
  vaultstats-cli stats --format json --ext md,markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "yaml", "json":
			default:
				return fmt.Errorf("unknown format %q (expected text, yaml or json)", format)
			}
			if !cmd.Flags().Changed("top") {
				top = a.cfg.Top
			}

			result, err := flags.run(cmd, a, top)
			if err != nil {
				return err
			}
			return writeStats(cmd.OutOrStdout(), result, format)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&top, "top", "n", 3, "number of most frequent tags to print")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, yaml, json)")

	return cmd
}

func newTagsCmd(a *app) *cobra.Command {
	var flags scanFlags
	var top int

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List every tag of the vault by frequency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := flags.run(cmd, a, 1)
			if err != nil {
				return err
			}

			n := len(result.Report.Totals.Tags)
			if top > 0 {
				n = top
			}
			for _, tc := range domain.Rank(result.Report.Totals, n) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", tc.Tag, tc.Count)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&top, "top", "n", 0, "limit the list to the N most frequent tags (0 = all)")

	return cmd
}

// statsOutput is the machine-readable stats report
type statsOutput struct {
	Vault          string            `json:"vault" yaml:"vault"`
	Documents      int               `json:"documents" yaml:"documents"`
	TotalLinkCount int               `json:"total_link_count" yaml:"total_link_count"`
	TotalWordCount int               `json:"total_word_count" yaml:"total_word_count"`
	TopTags        []domain.TagCount `json:"top_tags" yaml:"top_tags"`
	Skipped        int               `json:"skipped" yaml:"skipped"`
	Failures       []scan.Failure    `json:"failures" yaml:"failures"`
}

func writeStats(w io.Writer, result *commands.StatsResult, format string) error {
	report := result.Report

	switch format {
	case "text", "":
		_, err := io.WriteString(w, result.Summary())
		return err
	}

	out := statsOutput{
		Vault:          report.Root,
		Documents:      report.Documents,
		TotalLinkCount: report.Totals.LinkCount,
		TotalWordCount: report.Totals.WordCount,
		TopTags:        result.TopTags,
		Skipped:        report.Skipped(),
		Failures:       report.Failures,
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (expected text, yaml or json)", format)
	}
}
