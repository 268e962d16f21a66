package commands

import (
	"github.com/spf13/cobra"

	"github.com/acidni/googleops/internal/analytics"
	"github.com/acidni/googleops/internal/config"
)

// NewReportCommand creates the 'report' command.
func NewReportCommand(cfg *config.Config) *cobra.Command {
	var (
		metrics    string
		dimensions string
	)

	cmd := &cobra.Command{
		Use:   "report <property-id> <start-date> <end-date>",
		Short: "Run a GA4 Data API report",
		Long: `Run a report over a date range. Dates are GA4 date expressions:
absolute ("2026-08-01") or relative ("7daysAgo", "today", "yesterday").

Examples:
  googleops report 123456 7daysAgo today
  googleops report 123456 2026-08-01 2026-08-25 --metrics activeUsers,sessions
  googleops report 123456 30daysAgo today --metrics screenPageViews --dimensions country`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := runClient(cfg)
			if err != nil {
				return err
			}

			result, err := client.RunReport(cmd.Context(), args[0], args[1], args[2], analytics.ReportOptions{
				Metrics:    metrics,
				Dimensions: dimensions,
			})
			if err != nil {
				return err
			}
			return printResult(result)
		},
	}

	cmd.Flags().StringVar(&metrics, "metrics", "", "Comma-separated GA4 metric names (script default when unset)")
	cmd.Flags().StringVar(&dimensions, "dimensions", "", "Comma-separated GA4 dimension names")

	return cmd
}
