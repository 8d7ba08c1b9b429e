package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"cs2ts/internal/options"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a cs2ts.toml with the default options",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := projectRoot(args)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.Wrapf(err, "create %s", dir)
			}
			opts := options.Default()
			if out, _ := cmd.Flags().GetString("out"); out != "" {
				opts = opts.WithOutputPath(out)
			}
			path := filepath.Join(dir, options.ManifestName)
			if err := options.WriteManifest(path, opts); err != nil {
				return err
			}
			if !quiet(cmd) {
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "out", "output_path written to the manifest")
	return cmd
}
