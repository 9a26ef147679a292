package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dashpatch/dashpatch/internal/patch"
)

// newApplyCmd applies a patch to a local document and writes the result
// to stdout, or to the --out path when one is given, with no Grafana
// instance involved, so the engine can be exercised offline without a
// live instance to test against.
func newApplyCmd() *cobra.Command {
	var (
		docPath   string
		patchPath string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a patch to a local JSON/YAML document",
		RunE: func(cmd *cobra.Command, args []string) error {
			docJSON, err := readJSONOrYAML(docPath)
			if err != nil {
				return err
			}
			patchJSON, err := readJSONOrYAML(patchPath)
			if err != nil {
				return err
			}
			result, err := patch.ApplyJSON(docJSON, patchJSON)
			if err != nil {
				return fmt.Errorf("apply patch: %w", err)
			}
			if outPath == "" || outPath == "-" {
				fmt.Println(string(result))
				return nil
			}
			return os.WriteFile(outPath, result, 0o644)
		},
	}

	cmd.Flags().StringVar(&docPath, "doc", "", "path to the JSON/YAML document to patch")
	cmd.Flags().StringVarP(&patchPath, "patch", "p", "", "path to a JSON/YAML patch file, or an inline JSON patch")
	cmd.Flags().StringVar(&outPath, "out", "-", "output path, or \"-\" for stdout")
	_ = cmd.MarkFlagRequired("doc")
	_ = cmd.MarkFlagRequired("patch")

	return cmd
}
