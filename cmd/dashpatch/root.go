package main

import (
	"github.com/spf13/cobra"

	"github.com/dashpatch/dashpatch/internal/journal"
)

// Global flags shared by every command that talks to a Grafana instance.
var (
	flagConfig     string
	flagConfigPath string
	flagURL        string
	flagVerbose    bool
)

// NewRootCmd builds the dashpatch command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashpatch",
		Short: "Apply extended JSON patches to Grafana dashboards and data sources",
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "conf", "", `inline manager config JSON, e.g. '{"instances":[{"url":"...","master":true}]}'`)
	cmd.PersistentFlags().StringVar(&flagConfigPath, "conf-path", "", "path to a manager config JSON file")
	cmd.PersistentFlags().StringVar(&flagURL, "url", "", "single Grafana instance URL (credentials from the environment or the URL itself)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug-level internal logging")

	cmd.AddCommand(newDashboardCmd())
	cmd.AddCommand(newDatasourceCmd())
	cmd.AddCommand(newApplyCmd())
	cmd.AddCommand(newResolveCmd())

	return cmd
}

func loggers() journal.Loggers {
	level := journal.LevelInfo
	if flagVerbose {
		level = journal.LevelDebug
	}
	return journal.New(level)
}
