package main

//
// Versions
//

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/bikeshare"
	"github.com/YuminosukeSato/bikeshare/modelstore"
)

// versionsSubcommand returns the versions subcommand.
func versionsSubcommand(g *globalFlags, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "Lists the pipeline versions in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			store, err := modelstore.Open(cfg.App)
			if err != nil {
				return err
			}
			defer store.Close()
			versions, err := store.Versions()
			if err != nil {
				return err
			}
			for _, v := range versions {
				marker := " "
				if v == bikeshare.Version {
					marker = "*"
				}
				fmt.Fprintf(stdout, "%s %s\n", marker, v)
			}
			return nil
		},
	}
}
