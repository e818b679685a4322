package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/fixtree/pkg/fixtree"
)

func newApplyCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "apply <manifest> <target>",
		Short: "Materialize a fixture manifest into a directory",
		Long: `Apply reads a YAML or TOML fixture manifest and merges it into the
target directory. Existing entries not mentioned in the manifest are
left untouched unless --replace is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, target := args[0], args[1]

			node, err := fixtree.LoadManifest(manifest)
			if err != nil {
				return err
			}

			tree := fixtree.New(target)
			if replace {
				if err := tree.Replace(node); err != nil {
					return err
				}
			} else {
				if err := tree.Merge(node); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "applied %s to %s\n", manifest, tree.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Delete the target first so no prior content survives")

	return cmd
}
