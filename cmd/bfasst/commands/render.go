package commands

import (
	"github.com/bfasst/bfasst/internal/artifact"
	"github.com/bfasst/bfasst/internal/printer"
	"github.com/bfasst/bfasst/internal/render"
	"github.com/spf13/cobra"
)

var (
	renderTemplate string
	renderData     string
	renderOut      string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a template with the fields of a config artifact",
	Long: `Render a template with the fields of a JSON config artifact and write
the result to --out.

build.ninja uses this to turn synth.json and impl.json into the Tcl scripts
vivado runs.

Example:
  bfasst render --template tools/synth/viv_synth.tcl.tmpl \
    --data build/example/add4/synth/synth.json \
    --out build/example/add4/synth/synth.tcl`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderTemplate, "template", "", "Template file")
	renderCmd.Flags().StringVar(&renderData, "data", "", "JSON config artifact supplying the bindings")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file")
	_ = renderCmd.MarkFlagRequired("template")
	_ = renderCmd.MarkFlagRequired("data")
	_ = renderCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	content, err := render.Artifact(renderTemplate, renderData)
	if err != nil {
		return printer.ErrorWithContext(
			"Render failed",
			err.Error(),
			[][2]string{{"Template", renderTemplate}, {"Data", renderData}},
			nil,
		)
	}

	if err := artifact.NewStore().Put(cmd.Context(), renderOut, []byte(content)); err != nil {
		return report(err)
	}
	return nil
}
