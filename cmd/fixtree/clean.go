package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/fixtree/pkg/fixtree"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean <target>",
		Short: "Delete a materialized fixture tree",
		Long: `Clean removes whatever exists at the target path, recursively for a
directory. Cleaning a nonexistent path is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := fixtree.New(args[0])
			if err := tree.Delete(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleaned %s\n", tree.Path())
			return nil
		},
	}
}
