package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"apngforge/internal/buildspec"
)

func newResolveCommand() *cobra.Command {
	var baseDir string

	cmd := &cobra.Command{
		Use:         "resolve <path-spec>",
		Short:       "Expand a frame path specification and print the matching files",
		Long:        "Runs the frame path resolver against a literal or wildcard specification, printing one matching file per line. Useful for checking what a spec's frame declaration will pick up.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			base := baseDir
			if base == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("determine working directory: %w", err)
				}
				base = wd
			}

			files, err := buildspec.ResolveFiles(args[0], base)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, file := range files {
				fmt.Fprintln(out, file)
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no matching files")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseDir, "base-dir", "", "Directory to resolve relative specifications against (default: current directory)")
	return cmd
}
