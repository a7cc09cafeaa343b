package cmd

import (
	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/cmmoran/createdom/internal/diag"
	"github.com/cmmoran/createdom/internal/model"
	"github.com/cmmoran/createdom/pkg/parser"
)

func init() {
	rootCmd.AddCommand(NewInspectCommand())
}

// inspection is the document printed by inspect.
type inspection struct {
	Info        model.Info        `json:"info"`
	Types       []*model.Object   `json:"types"`
	Reflecting  []string          `json:"reflecting"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

func NewInspectCommand() *cobra.Command {
	var (
		compact      bool
		excludeTypes []string
	)

	var inspectCmd = &cobra.Command{
		Use:   "inspect <schema.csv>",
		Short: "print the resolved schema as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			p, err := parser.New(parser.WithSchemaFile(args[0]), parser.WithExcludeTypes(excludeTypes...))
			if err != nil {
				return err
			}
			if err = p.Parse(); err != nil {
				return err
			}
			doc := inspection{
				Info:        p.Model().Info,
				Types:       p.View().Types(),
				Reflecting:  p.View().Reflecting(),
				Diagnostics: p.Diagnostics().All(),
			}
			var out []byte
			if compact {
				out, err = json.Marshal(doc)
			} else {
				out, err = json.MarshalIndent(doc, "", "  ")
			}
			if err != nil {
				return errors.Wrap(err, "encode model")
			}
			c.Println(string(out))
			return nil
		},
	}
	inspectCmd.Flags().BoolVar(&compact, "compact", false, "print on a single line")
	inspectCmd.Flags().StringSliceVarP(&excludeTypes, "exclude-types", "t", []string{}, "leave named types out of the output")

	return inspectCmd
}
