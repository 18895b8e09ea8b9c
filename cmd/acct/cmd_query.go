package main

import (
	"errors"
	"fmt"
	"strings"

	"accountability/cmd/acct/ui"
	"accountability/internal/analysis"
	"accountability/internal/client"
	"accountability/internal/report"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// formatDashboard prints the same dashboard the interactive mode shows.
const formatDashboard = "dashboard"

var (
	queryFormat string
	queryWidth  int
	queryStyle  string
)

// queryCmd runs one analysis and prints the result
var queryCmd = &cobra.Command{
	Use:   "query [text...]",
	Short: "Analyse a query and print the report",
	Long: `Sends the query to the analysis service and prints the result.

Formats:
  dashboard  the interactive dashboard layout, printed once (default)
  markdown   a Markdown report
  rendered   the Markdown report rendered for the terminal
  json       the raw service response, pretty-printed`,
	Example: `  acct query "Who was charged in the Acme bribery case?"
  acct query --format markdown bribery case > report.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return client.ErrEmptyQuery
	}

	// Validate the format before spending a request on it.
	var w report.Writer
	if !strings.EqualFold(queryFormat, formatDashboard) {
		var err error
		w, err = report.NewWriter(report.Format(queryFormat), cmd.OutOrStdout(), report.Options{
			Width: queryWidth,
			Style: queryStyle,
		})
		if err != nil {
			return err
		}
	}

	c := newClient(logger)
	defer c.Close()

	requestID := uuid.NewString()
	ctx := client.WithRequestID(cmd.Context(), requestID)
	logger.Debug("processing query", zap.String("request_id", requestID), zap.Int("query_len", len(query)))

	result, err := c.Process(ctx, query)
	if err != nil {
		return describeError(err)
	}

	if w != nil {
		_, err = w.Write(result)
		return err
	}
	return printDashboard(cmd, result)
}

// printDashboard writes the dashboard for result at the requested width.
func printDashboard(cmd *cobra.Command, result *analysis.AnalysisResult) error {
	width := queryWidth
	if width <= 0 {
		width = ui.CompactModeWidth
	}
	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))
	_, err := fmt.Fprintln(cmd.OutOrStdout(), ui.RenderDashboard(result, styles, width))
	return err
}

// describeError adds a hint for the failures a user can act on.
func describeError(err error) error {
	var netErr *client.NetworkError
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w (is the service running at %s?)", err, cfg.API.BaseURL)
	}
	return err
}

func init() {
	queryCmd.Flags().StringVarP(&queryFormat, "format", "f", formatDashboard, "Output format: dashboard, markdown, rendered, json")
	queryCmd.Flags().IntVarP(&queryWidth, "width", "w", 0, "Output width for dashboard and rendered formats (default 100 and 80)")
	queryCmd.Flags().StringVar(&queryStyle, "style", "auto", "Glamour style for the rendered format (auto, dark, light, notty)")
}
