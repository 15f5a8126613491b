package main

import (
	"fmt"

	"camera-viewer/internal/asset"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [model]",
	Short: "Load a model without a window and print what the viewer would show",
	Long: `Runs the same retrieve, parse and validate steps as the viewer and prints
the mesh count and bounds. A failed load prints the stage that failed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadSetup(cmd)
		if err != nil {
			return err
		}
		resource := st.prefs.Model
		if len(args) == 1 {
			resource = args[0]
		}
		mdl, err := asset.NewLoader(st.prefs.CacheDir, st.log).LoadSync(cmd.Context(), resource)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "resource: %s\n", mdl.Resource)
		fmt.Fprintf(out, "file:     %s\n", mdl.LocalPath)
		fmt.Fprintf(out, "meshes:   %d\n", mdl.MeshCount)
		fmt.Fprintf(out, "bounds:   %v .. %v\n", mdl.Bounds.Min, mdl.Bounds.Max)
		fmt.Fprintf(out, "extent:   %v\n", mdl.Bounds.Extent())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
