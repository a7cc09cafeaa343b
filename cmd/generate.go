package cmd

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/cmmoran/createdom/internal/output"
	"github.com/cmmoran/createdom/pkg/action/generate"
)

func init() {
	var generateCmd = NewGenerateCommand()
	rootCmd.AddCommand(generateCmd)
}

func NewGenerateCommand() *cobra.Command {
	var (
		force bool
		flags *generationFlags
	)

	// generateCmd represents the createdom generate command
	var generateCmd = &cobra.Command{
		Use:   "generate <schema.csv> [destDir]",
		Short: "generate bindings",
		Long:  "Parse a CSV schema and write the bindings of every requested target into destDir",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			opts := flags.resolve(c, args)
			if c.Flags().Changed("force") {
				opts.Force = force
			}
			res, err := generate.Generate(opts)
			if err != nil {
				return err
			}
			for _, f := range res.Files {
				if f.Status == output.Unchanged {
					continue
				}
				c.Printf("%-9s %s\n", f.Status, f.Path)
			}
			for _, p := range res.Skipped {
				c.Printf("%-9s %s\n", "skipped", p)
			}
			for _, e := range res.Stale {
				c.Printf("%-9s %s\n", "stale", e.File)
			}
			if n := res.Failed(); n > 0 {
				return errors.Newf("%d file(s) could not be written", n)
			}
			return nil
		},
	}
	flags = newGenerationFlags(generateCmd)
	generateCmd.Flags().BoolVarP(&force, "force", "f", false, "rewrite files even when unchanged or edited since generation")

	return generateCmd
}
