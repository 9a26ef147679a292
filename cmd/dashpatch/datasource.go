package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashpatch/dashpatch/internal/grafana"
	"github.com/dashpatch/dashpatch/internal/patch"
)

// newDatasourceCmd builds the data source command group: export fetches,
// patches, and writes back a data source by UID; list lists every
// configured data source.
func newDatasourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasource",
		Short: "Operate on Grafana data sources",
	}

	var (
		uid       string
		patchPath string
	)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch a data source by UID, apply a patch, and write it back",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasourceExport(cmd.Context(), uid, patchPath)
		},
	}
	exportCmd.Flags().StringVar(&uid, "uid", "", "UID of the data source to change")
	exportCmd.Flags().StringVarP(&patchPath, "patch", "p", "", "path to a JSON/YAML patch file, or an inline JSON patch")
	_ = exportCmd.MarkFlagRequired("uid")
	_ = exportCmd.MarkFlagRequired("patch")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every configured data source",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasourceList(cmd.Context())
		},
	}

	cmd.AddCommand(exportCmd, listCmd)
	return cmd
}

func runDatasourceExport(ctx context.Context, uid, patchPath string) error {
	logs := loggers()
	cfg, err := resolveManagerConfig()
	if err != nil {
		return err
	}
	mgr, err := grafana.NewDataSourceManager(cfg, logs.Internal)
	if err != nil {
		return err
	}

	docJSON, err := mgr.GetByUID(ctx, uid)
	if err != nil {
		return fmt.Errorf("fetch data source %q: %w", uid, err)
	}
	patchJSON, err := readJSONOrYAML(patchPath)
	if err != nil {
		return err
	}

	updated, err := patch.ApplyJSON(docJSON, patchJSON)
	if err != nil {
		return fmt.Errorf("apply patch to data source %q: %w", uid, err)
	}

	if err := mgr.Update(ctx, uid, updated); err != nil {
		return fmt.Errorf("write back data source %q: %w", uid, err)
	}
	logs.Stdout.Info(fmt.Sprintf("data source %s updated", uid))
	return nil
}

func runDatasourceList(ctx context.Context) error {
	logs := loggers()
	cfg, err := resolveManagerConfig()
	if err != nil {
		return err
	}
	mgr, err := grafana.NewDataSourceManager(cfg, logs.Internal)
	if err != nil {
		return err
	}
	body, err := mgr.List(ctx)
	if err != nil {
		return err
	}
	logs.Stdout.Info(string(body))
	return nil
}
