package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dashpatch/dashpatch/internal/patch"
	"github.com/dashpatch/dashpatch/internal/value"
)

// newResolveCmd is a diagnostic entry point with no source equivalent: it
// compiles and resolves a single path expression against a document and
// prints the concrete pointers it addresses, without applying any
// mutation, so a patch author can check a wildcard/predicate path before
// trusting it to a write.
func newResolveCmd() *cobra.Command {
	var docPath string

	cmd := &cobra.Command{
		Use:   "resolve [path]",
		Short: "Show which concrete pointers a path expression addresses in a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logs := loggers()
			docJSON, err := readJSONOrYAML(docPath)
			if err != nil {
				return err
			}
			doc, err := value.Parse(docJSON)
			if err != nil {
				return fmt.Errorf("parse document: %w", err)
			}
			pointers, err := patch.ResolvePaths(doc, args[0])
			if err != nil {
				return err
			}
			for _, p := range pointers {
				logs.Stdout.Info(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&docPath, "doc", "", "path to the JSON/YAML document to resolve against")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}
