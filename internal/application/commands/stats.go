package commands

import (
	"context"
	"fmt"
	"strings"

	"vaultstats/internal/application"
	"vaultstats/internal/domain"
	"vaultstats/internal/scan"
)

// Scanner runs one statistics pass over a vault root
type Scanner interface {
	Run(ctx context.Context, root string) (*scan.Report, error)
}

// StatsResult contains the scan report and its most frequent tags
type StatsResult struct {
	Report  *scan.Report      `json:"report" yaml:"report"`
	TopTags []domain.TagCount `json:"top_tags" yaml:"top_tags"`
}

// StatsCommand computes vault statistics
type StatsCommand struct {
	scanner Scanner
	Root    string
	Top     int
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(scanner Scanner, root string, top int) *StatsCommand {
	return &StatsCommand{
		scanner: scanner,
		Root:    root,
		Top:     top,
	}
}

// Validate checks if the stats operation is valid
func (c *StatsCommand) Validate() error {
	if err := application.ValidateRequired("vaultPath", c.Root); err != nil {
		return err
	}
	return application.ValidatePositive("top", c.Top)
}

// Execute runs the scan and ranks the top tags
func (c *StatsCommand) Execute(ctx context.Context) (*StatsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	report, err := c.scanner.Run(ctx, c.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan vault: %w", err)
	}

	return &StatsResult{
		Report:  report,
		TopTags: domain.Rank(report.Totals, c.Top),
	}, nil
}

// Summary renders the result as the plain text stats report
func (r *StatsResult) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Vault Links: %d\n", r.Report.Totals.LinkCount)
	fmt.Fprintf(&sb, "Vault Words: %d\n", r.Report.Totals.WordCount)
	fmt.Fprintf(&sb, "Documents: %d\n", r.Report.Documents)
	sb.WriteString("Most Frequent Tags:\n")
	for _, tc := range r.TopTags {
		fmt.Fprintf(&sb, "    %s: %d\n", tc.Tag, tc.Count)
	}
	if skipped := r.Report.Skipped(); skipped > 0 {
		fmt.Fprintf(&sb, "Skipped documents: %d\n", skipped)
	}
	return sb.String()
}
