package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cmmoran/createdom/pkg/action/diff"
	"github.com/cmmoran/createdom/pkg/parser"
)

func init() {
	rootCmd.AddCommand(NewDiffCommand())
}

func NewDiffCommand() *cobra.Command {
	var (
		drift bool
		flags *generationFlags
	)

	var diffCmd = &cobra.Command{
		Use:   "diff <schema.csv> [destDir]",
		Short: "show what generate would change",
		Long: "Render every requested target and print a diff against the files in destDir without writing.\n" +
			"With --drift, only destDir is needed and files edited since the last generation are listed.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			if drift {
				opts := parser.NewOptions()
				opts.OutDir = args[len(args)-1]
				if c.Flags().Changed("manifest") {
					opts.Manifest = flags.options.Manifest
				}
				opts.Normalize()
				drifted, err := diff.Drift(opts.Manifest)
				if err != nil {
					return err
				}
				for _, d := range drifted {
					state := "modified"
					if d.Current == "" {
						state = "missing"
					}
					c.Printf("%-9s %s\n", state, filepath.Join(opts.OutDir, filepath.FromSlash(d.File)))
				}
				return nil
			}

			changes, err := diff.Changes(flags.resolve(c, args))
			if err != nil {
				return err
			}
			for _, d := range changes {
				if d.Diff == "" {
					continue
				}
				if !d.Exists {
					c.Printf("--- %s (new file)\n", d.Path)
				} else {
					c.Printf("--- %s\n", d.Path)
				}
				c.Println(d.Diff)
			}
			return nil
		},
	}
	flags = newGenerationFlags(diffCmd)
	diffCmd.Flags().BoolVar(&drift, "drift", false, "compare destDir against its manifest instead of rendering")

	return diffCmd
}
