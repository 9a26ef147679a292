package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashpatch/dashpatch/internal/grafana"
	"github.com/dashpatch/dashpatch/internal/patch"
)

// newDashboardCmd builds the dashboard command group: export pulls a
// dashboard, applies a patch, and writes it back (fanning out to slaves
// when configured); list lists every visible dashboard.
func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Operate on Grafana dashboards",
	}

	var (
		uid       string
		patchPath string
	)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch a dashboard by UID, apply a patch, and write it back",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboardExport(cmd.Context(), uid, patchPath)
		},
	}
	exportCmd.Flags().StringVar(&uid, "uid", "", "UID of the dashboard to change")
	exportCmd.Flags().StringVarP(&patchPath, "patch", "p", "", "path to a JSON/YAML patch file, or an inline JSON patch")
	_ = exportCmd.MarkFlagRequired("uid")
	_ = exportCmd.MarkFlagRequired("patch")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every dashboard visible on the configured instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboardList(cmd.Context())
		},
	}

	cmd.AddCommand(exportCmd, listCmd)
	return cmd
}

func runDashboardExport(ctx context.Context, uid, patchPath string) error {
	logs := loggers()
	cfg, err := resolveManagerConfig()
	if err != nil {
		return err
	}
	mgr, err := grafana.NewDashboardManager(cfg, logs.Internal)
	if err != nil {
		return err
	}

	docJSON, err := mgr.GetByUID(ctx, uid)
	if err != nil {
		return fmt.Errorf("fetch dashboard %q: %w", uid, err)
	}
	patchJSON, err := readJSONOrYAML(patchPath)
	if err != nil {
		return err
	}

	updated, err := patch.ApplyJSON(docJSON, patchJSON)
	if err != nil {
		return fmt.Errorf("apply patch to dashboard %q: %w", uid, err)
	}

	if err := mgr.Update(ctx, updated); err != nil {
		return fmt.Errorf("write back dashboard %q: %w", uid, err)
	}
	logs.Stdout.Info(fmt.Sprintf("dashboard %s updated", uid))
	return nil
}

func runDashboardList(ctx context.Context) error {
	logs := loggers()
	cfg, err := resolveManagerConfig()
	if err != nil {
		return err
	}
	mgr, err := grafana.NewDashboardManager(cfg, logs.Internal)
	if err != nil {
		return err
	}
	body, err := mgr.Search(ctx, "")
	if err != nil {
		return err
	}
	logs.Stdout.Info(string(body))
	return nil
}
